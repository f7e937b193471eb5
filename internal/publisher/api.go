package publisher

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strings"
)

const (
	uploadImagePath = "/api/sns/web/v1/upload/image"
	createNotePath  = "/api/sns/web/v1/note"
)

type noteRequest struct {
	Title    string   `json:"title"`
	Content  string   `json:"content"`
	ImageIDs []string `json:"image_ids"`
	Type     string   `json:"type"`
}

type noteResponse struct {
	PostURL string `json:"post_url"`
	Message string `json:"message"`
}

type uploadResponse struct {
	ImageID string `json:"image_id"`
}

// publishViaAPI uploads the cover image then creates the note through
// the platform open API.
func (p *Publisher) publishViaAPI(ctx context.Context, title, content, imagePath string) (*Result, error) {
	imageID, err := p.uploadImage(ctx, imagePath)
	if err != nil {
		return nil, fmt.Errorf("failed to upload image: %w", err)
	}

	reqBody := noteRequest{
		Title:    title,
		Content:  content,
		ImageIDs: []string{imageID},
		Type:     "normal",
	}

	jsonBody, err := json.Marshal(reqBody)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, "POST",
		strings.TrimRight(p.cfg.APIBaseURL, "/")+createNotePath, bytes.NewReader(jsonBody))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+p.cfg.AccessToken)

	resp, err := p.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to call note API: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode != http.StatusOK {
		return &Result{
			Success: false,
			Method:  "api",
			Message: fmt.Sprintf("note API returned status %d: %s", resp.StatusCode, string(body)),
		}, nil
	}

	var noteResp noteResponse
	json.Unmarshal(body, &noteResp)

	p.log.Info().Str("post_url", noteResp.PostURL).Msg("post published via API")

	return &Result{
		Success:   true,
		Method:    "api",
		Message:   "published",
		PostURL:   noteResp.PostURL,
		ImagePath: imagePath,
	}, nil
}

// uploadImage posts the image file and returns the platform image id.
func (p *Publisher) uploadImage(ctx context.Context, imagePath string) (string, error) {
	f, err := os.Open(imagePath)
	if err != nil {
		return "", err
	}
	defer f.Close()

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	part, err := writer.CreateFormFile("file", filepath.Base(imagePath))
	if err != nil {
		return "", err
	}
	if _, err := io.Copy(part, f); err != nil {
		return "", err
	}
	if err := writer.Close(); err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, "POST",
		strings.TrimRight(p.cfg.APIBaseURL, "/")+uploadImagePath, &buf)
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+p.cfg.AccessToken)

	resp, err := p.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("upload API returned status %d: %s", resp.StatusCode, string(body))
	}

	var uploadResp uploadResponse
	if err := json.Unmarshal(body, &uploadResp); err != nil {
		return "", fmt.Errorf("failed to parse upload response: %w", err)
	}
	if uploadResp.ImageID == "" {
		return "", fmt.Errorf("upload response carried no image id")
	}
	return uploadResp.ImageID, nil
}
