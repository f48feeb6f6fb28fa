package entity

// Имена терминальных операций, INGEST_OPERATION.
const (
	OperationResize = "resize"
	OperationQRCode = "qrcode"
)
