package response

type Resize struct {
	Message string `json:"message"`
	Width   int    `json:"width"`
	Height  int    `json:"height"`
	ID      string `json:"id"`
}

type QRCode struct {
	Message string `json:"message"`
	ID      string `json:"id"`
	Text    string `json:"text,omitempty"`
	Format  string `json:"format,omitempty"`
}

type Error struct {
	Error string `json:"error" example:"Dados base64 inválidos"`
}
