package entity

type Status string

const (
	Pending    Status = "pending"
	Processing Status = "processing"
	Processed  Status = "processed"
	Failed     Status = "failed"

	StoreFailed  Status = "store_failed"
	CodeNotFound Status = "code_not_found"
)
