package gateway

import (
	"context"
	"encoding/json"
	"io"

	"github.com/dailyhustle/hustle/internal/client/models"
)

type uploaded struct {
	Src string `json:"src"`
}

// UploadFile posts r under the "files" field and returns the stored URL.
// A response without data[0].src is an UPLOAD_NO_SRC domain error.
func (g *Gateway) UploadFile(ctx context.Context, filename string, r io.Reader) (string, error) {
	var env envelope[json.RawMessage]
	if err := g.t.Upload(ctx, "/files", "files", filename, r, &env); err != nil {
		return "", err
	}
	if src := firstSrc(env.Data); src != "" {
		return src, nil
	}
	return "", models.NewDomainError(models.CodeUploadNoSrc, "No image URL returned from server.")
}

// firstSrc accepts data as a list, or as a nested { data: [...] }.
func firstSrc(data json.RawMessage) string {
	var list []uploaded
	if err := json.Unmarshal(data, &list); err == nil {
		if len(list) > 0 {
			return list[0].Src
		}
		return ""
	}
	var nested envelope[[]uploaded]
	if err := json.Unmarshal(data, &nested); err == nil && len(nested.Data) > 0 {
		return nested.Data[0].Src
	}
	return ""
}
