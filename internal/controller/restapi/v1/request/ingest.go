package request

type Ingest struct {
	// data URL, "<header>,<base64 payload>"
	Image *string `json:"image"`
}
