package v1

const (
	msgMissingImage     = "Dados de imagem ausentes no JSON"
	msgInvalidDataURL   = "Formato de URL de dados inválido"
	msgInvalidBase64    = "Dados base64 inválidos"
	msgUndecodableImage = "Não foi possível abrir a imagem. Dados corrompidos?"
	msgCodeNotFound     = "Não foi possível ler o qrcode na imagem."
	msgInternal         = "Erro interno ao processar a imagem"

	msgResized    = "Imagem recebida e processada com sucesso!"
	msgCodeDecode = "QR code lido com sucesso!"
)
