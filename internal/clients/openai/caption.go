package openai

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/vostrano/heritage-backend/internal/logger"
)

// Caption produces publish-ready caption and alt text for a gallery photo.
// Provide exactly ONE of:
// - ImageURL (http(s)://... or data:image/...;base64,...)
// - ImageBytes + ImageMime (image/png, image/jpeg, etc.)
type Caption interface {
	DescribeImage(ctx context.Context, req CaptionRequest) (*CaptionResult, error)
}

type CaptionRequest struct {
	SiteName   string // heritage site the photo belongs to (optional context)
	Prompt     string // extra instructions (optional)
	ImageURL   string
	ImageBytes []byte
	ImageMime  string
	Detail     string // "low"|"high"
}

type CaptionResult struct {
	Caption  string   `json:"caption"`
	AltText  string   `json:"alt_text"`
	Subjects []string `json:"subjects"`
	Warnings []string `json:"warnings,omitempty"`
}

type caption struct {
	log    *logger.Logger
	client Client
}

func NewCaption(log *logger.Logger, client Client) (Caption, error) {
	if log == nil {
		return nil, fmt.Errorf("logger required")
	}
	if client == nil {
		return nil, fmt.Errorf("openai client required")
	}
	return &caption{
		log:    log.With("service", "Caption"),
		client: client,
	}, nil
}

func (c *caption) DescribeImage(ctx context.Context, req CaptionRequest) (*CaptionResult, error) {
	ctx, cancel := context.WithTimeout(ctx, 90*time.Second)
	defer cancel()

	imageURL := strings.TrimSpace(req.ImageURL)
	if imageURL == "" && len(req.ImageBytes) > 0 {
		if strings.TrimSpace(req.ImageMime) == "" {
			return nil, fmt.Errorf("ImageMime required when using ImageBytes")
		}
		imageURL = dataURL(req.ImageMime, req.ImageBytes)
	}
	if imageURL == "" {
		return nil, fmt.Errorf("image required (ImageURL or ImageBytes)")
	}

	system := "You write museum-quality photo captions and accessibility alt text for a cultural heritage website. Be factual; never invent names, dates, or places not visible in the image."
	user := buildCaptionPrompt(req.SiteName, req.Prompt)

	raw, err := c.client.GenerateTextWithImages(ctx, system, user, []ImageInput{
		{ImageURL: imageURL, Detail: req.Detail},
	})
	if err != nil {
		return nil, err
	}

	out, err := parseCaptionJSON(raw)
	if err == nil {
		return out, nil
	}

	repaired, err2 := c.client.GenerateText(
		ctx,
		"You are a JSON repair tool. Output ONLY valid JSON matching the required shape.",
		fmt.Sprintf(
			"Fix the following into valid JSON with keys:\n"+
				"caption (string), alt_text (string), subjects (array of strings), warnings (array optional).\n\nRAW:\n%s",
			raw,
		),
	)
	if err2 != nil {
		return nil, fmt.Errorf("caption JSON parse failed; repair call failed: %w; parse_err=%v", err2, err)
	}

	out2, err3 := parseCaptionJSON(repaired)
	if err3 != nil {
		return nil, fmt.Errorf("caption JSON parse failed after repair: %v; original_parse_err=%v", err3, err)
	}
	out2.Warnings = append(out2.Warnings, "caption JSON required repair pass")
	return out2, nil
}

func buildCaptionPrompt(siteName, extra string) string {
	var b strings.Builder
	b.WriteString("Return ONLY JSON.\n\n")
	if strings.TrimSpace(siteName) != "" {
		b.WriteString("The photo was taken at: " + strings.TrimSpace(siteName) + "\n\n")
	}
	b.WriteString("You must:\n")
	b.WriteString("- Write a one-to-two sentence caption suitable under the photo on a public page.\n")
	b.WriteString("- Write concise alt text (under 125 characters) describing what is visible.\n")
	b.WriteString("- List the main visible subjects.\n")
	b.WriteString("- Do not hallucinate details not visible.\n\n")
	if strings.TrimSpace(extra) != "" {
		b.WriteString("Extra instructions:\n")
		b.WriteString(extra)
		b.WriteString("\n\n")
	}
	b.WriteString("JSON shape:\n")
	b.WriteString(`{
  "caption": "string",
  "alt_text": "string",
  "subjects": ["..."],
  "warnings": ["...optional..."]
}`)
	return b.String()
}

func parseCaptionJSON(s string) (*CaptionResult, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, errors.New("empty response")
	}

	start := strings.Index(s, "{")
	end := strings.LastIndex(s, "}")
	if start >= 0 && end > start {
		s = s[start : end+1]
	}

	var out CaptionResult
	if err := json.Unmarshal([]byte(s), &out); err != nil {
		return nil, err
	}

	if strings.TrimSpace(out.Caption) == "" {
		return nil, fmt.Errorf("missing caption")
	}
	if strings.TrimSpace(out.AltText) == "" {
		out.AltText = out.Caption
	}
	if out.Subjects == nil {
		out.Subjects = []string{}
	}
	return &out, nil
}

func dataURL(mime string, b []byte) string {
	enc := base64.StdEncoding.EncodeToString(b)
	return fmt.Sprintf("data:%s;base64,%s", mime, enc)
}
