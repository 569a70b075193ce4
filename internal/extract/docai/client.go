// Package docai implements the OCR boundary over the Document AI REST API.
package docai

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"time"

	"google.golang.org/api/documentai/v1"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"

	"github.com/meishiscan/cardscan/internal/ingest"
)

// Config identifies the processor. Project id comes out of the service-account
// credentials, matching how the credential is provisioned.
type Config struct {
	CredentialsJSON []byte
	Location        string // e.g. "us"
	ProcessorID     string
}

type Client struct {
	svc  *documentai.Service
	name string // projects/{project}/locations/{location}/processors/{id}
	log  *slog.Logger
}

func NewClient(ctx context.Context, cfg Config, logger *slog.Logger) (*Client, error) {
	if logger == nil {
		logger = slog.Default()
	}
	if cfg.Location == "" || cfg.ProcessorID == "" {
		return nil, fmt.Errorf("docai: location and processor id are required")
	}

	var creds struct {
		ProjectID string `json:"project_id"`
	}
	if err := json.Unmarshal(cfg.CredentialsJSON, &creds); err != nil {
		return nil, fmt.Errorf("docai: parse credentials: %w", err)
	}
	if creds.ProjectID == "" {
		return nil, fmt.Errorf("docai: credentials carry no project_id")
	}

	svc, err := documentai.NewService(ctx,
		option.WithCredentialsJSON(cfg.CredentialsJSON),
		option.WithEndpoint(fmt.Sprintf("https://%s-documentai.googleapis.com/", cfg.Location)),
	)
	if err != nil {
		return nil, fmt.Errorf("docai: new service: %w", err)
	}

	return &Client{
		svc:  svc,
		name: fmt.Sprintf("projects/%s/locations/%s/processors/%s", creds.ProjectID, cfg.Location, cfg.ProcessorID),
		log:  logger,
	}, nil
}

// Extract sends the document to the processor and returns the full text.
// One bounded retry on transient errors; auth and quota failures surface
// immediately.
func (c *Client) Extract(ctx context.Context, doc *ingest.Document) (string, error) {
	req := &documentai.GoogleCloudDocumentaiV1ProcessRequest{
		RawDocument: &documentai.GoogleCloudDocumentaiV1RawDocument{
			Content:  base64.StdEncoding.EncodeToString(doc.Bytes),
			MimeType: doc.MIMEType,
		},
	}

	start := time.Now()
	resp, err := c.process(ctx, req)
	if err != nil && retryable(err) && ctx.Err() == nil {
		c.log.Warn("ocr.extract.retry", "error", err)
		resp, err = c.process(ctx, req)
	}
	if err != nil {
		c.log.Error("ocr.extract.failed",
			"processor", c.name,
			"mime_type", doc.MIMEType,
			"error", err,
			"elapsed_ms", time.Since(start).Milliseconds(),
		)
		return "", fmt.Errorf("document ai process: %w", err)
	}
	if resp.Document == nil {
		return "", fmt.Errorf("document ai returned no document payload")
	}

	c.log.Info("ocr.extract.ok",
		"mime_type", doc.MIMEType,
		"text_len", len(resp.Document.Text),
		"elapsed_ms", time.Since(start).Milliseconds(),
	)
	return resp.Document.Text, nil
}

func (c *Client) process(ctx context.Context, req *documentai.GoogleCloudDocumentaiV1ProcessRequest) (*documentai.GoogleCloudDocumentaiV1ProcessResponse, error) {
	return c.svc.Projects.Locations.Processors.Process(c.name, req).Context(ctx).Do()
}

// retryable classifies transient failures worth a single retry. Authentication
// (401/403) and quota (429) failures are terminal.
func retryable(err error) bool {
	var gerr *googleapi.Error
	if errors.As(err, &gerr) {
		return gerr.Code >= 500
	}
	var nerr net.Error
	if errors.As(err, &nerr) {
		return nerr.Timeout()
	}
	return false
}
