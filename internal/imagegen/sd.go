package imagegen

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
)

// Cover style for the Stable Diffusion backend: a minimal word card with
// only the lower-cased word, no illustration.
const sdStylePrompt = `小红书风格的英语单词学习卡片，
极简设计，干净的白色或浅米色背景，
1:1 正方形构图，
只包含一个英文单词，没有任何插画、人物或图形元素，
顶部居中显示醒目的小写英文单词，
现代无衬线字体，排版清晰，留白充足`

const sdNegativePrompt = `人物，真人，卡通，动漫，插画，
图标，emoji，符号，
彩色背景，渐变背景，
手写字体，模糊，变形，水印，logo`

type txt2imgRequest struct {
	Prompt         string `json:"prompt"`
	NegativePrompt string `json:"negative_prompt"`
	Width          int    `json:"width"`
	Height         int    `json:"height"`
	Steps          int    `json:"steps"`
}

type txt2imgResponse struct {
	Images []string `json:"images"`
}

// txt2img renders the word card through a local Stable Diffusion WebUI
// server and writes the decoded PNG to the output directory.
func (g *Generator) txt2img(ctx context.Context, word string) (string, error) {
	reqBody := txt2imgRequest{
		Prompt:         sdStylePrompt + "\n\n【文字内容】\n" + strings.ToLower(strings.TrimSpace(word)),
		NegativePrompt: sdNegativePrompt,
		Width:          1080,
		Height:         1080,
		Steps:          20,
	}

	jsonBody, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("failed to marshal txt2img request: %w", err)
	}

	url := strings.TrimRight(g.cfg.SDAPIURL, "/") + "/sdapi/v1/txt2img"
	req, err := http.NewRequestWithContext(ctx, "POST", url, bytes.NewReader(jsonBody))
	if err != nil {
		return "", fmt.Errorf("failed to create txt2img request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := g.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to call Stable Diffusion API: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read txt2img response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("Stable Diffusion API returned status %d: %s", resp.StatusCode, string(body))
	}

	var sdResp txt2imgResponse
	if err := json.Unmarshal(body, &sdResp); err != nil {
		return "", fmt.Errorf("failed to parse txt2img response: %w", err)
	}

	if len(sdResp.Images) == 0 {
		return "", fmt.Errorf("Stable Diffusion returned no images")
	}

	png, err := base64.StdEncoding.DecodeString(sdResp.Images[0])
	if err != nil {
		return "", fmt.Errorf("failed to decode txt2img image: %w", err)
	}

	if err := os.MkdirAll(g.cfg.OutputDir, 0755); err != nil {
		return "", err
	}

	path := filepath.Join(g.cfg.OutputDir, safeFilename(word)+"_sd.png")
	if err := os.WriteFile(path, png, 0644); err != nil {
		return "", fmt.Errorf("failed to write image: %w", err)
	}
	return path, nil
}
