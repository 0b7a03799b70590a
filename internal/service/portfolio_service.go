package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/vbonduro/paani/internal/assetstore"
	"github.com/vbonduro/paani/internal/chat"
	"github.com/vbonduro/paani/internal/contentstore"
	"github.com/vbonduro/paani/internal/domain"
)

var (
	// ErrWritesDisabled is returned by SavePortfolio on deployments whose
	// filesystem is read-only while the document lives in a local file.
	ErrWritesDisabled = errors.New("portfolio writes are disabled on this deployment; configure durable storage")
	// ErrNoFile means an upload carried no file.
	ErrNoFile = errors.New("no file uploaded")
	// ErrMissingFields means a chat request lacked its question or context.
	ErrMissingFields = errors.New("question and context are required")
	// ErrChatUnavailable means no text-generation backend is configured.
	ErrChatUnavailable = errors.New("chat is not configured")
	// ErrUpstream wraps failures of the text-generation backend.
	ErrUpstream = errors.New("text generation failed")
)

type PortfolioService struct {
	content        contentstore.Store
	assets         assetstore.Store
	responder      chat.Responder
	writesDisabled bool
	logger         *slog.Logger
}

// NewPortfolioService wires the stores and the chat backend. responder may be
// nil, in which case Chat reports ErrChatUnavailable.
func NewPortfolioService(
	content contentstore.Store,
	assets assetstore.Store,
	responder chat.Responder,
	writesDisabled bool,
	logger *slog.Logger,
) *PortfolioService {
	return &PortfolioService{
		content:        content,
		assets:         assets,
		responder:      responder,
		writesDisabled: writesDisabled,
		logger:         logger,
	}
}

// GetPortfolio returns the stored document. Errors carry the
// contentstore.ErrNotFound / ErrCorrupt / ErrIO classification.
func (s *PortfolioService) GetPortfolio(ctx context.Context) (*domain.PortfolioDocument, error) {
	doc, err := s.content.Read(ctx)
	if err != nil {
		return nil, err
	}
	return doc, nil
}

// SavePortfolio replaces the stored document with doc. There is no merge and
// no version check: the last caller wins.
func (s *PortfolioService) SavePortfolio(ctx context.Context, doc *domain.PortfolioDocument) error {
	if s.writesDisabled {
		return ErrWritesDisabled
	}
	if doc == nil {
		doc = domain.NewPortfolioDocument()
	}
	doc.Normalize()

	if err := s.content.Write(ctx, doc); err != nil {
		return err
	}
	s.logger.Info("portfolio saved",
		"store_projects", len(doc.CaseStudies.Store),
		"website_projects", len(doc.CaseStudies.Website),
		"photos", len(doc.Photos),
		"videos", len(doc.Videos),
	)
	return nil
}

// UploadAsset stores one uploaded file and returns its public URL.
func (s *PortfolioService) UploadAsset(ctx context.Context, name string, r io.Reader) (string, error) {
	if r == nil {
		return "", ErrNoFile
	}
	if name == "" {
		name = "upload"
	}

	url, err := s.assets.Save(ctx, name, r)
	if err != nil {
		return "", fmt.Errorf("failed to store upload: %w", err)
	}
	s.logger.Info("asset uploaded", "name", name, "url", url)
	return url, nil
}

// OpenAsset returns a reader for a stored asset and its content type.
func (s *PortfolioService) OpenAsset(ctx context.Context, name string) (io.ReadCloser, string, error) {
	return s.assets.Get(ctx, name)
}

// Chat forwards context and question to the text-generation backend as one
// prompt and returns the model output unmodified. Only empty strings count as
// missing; whitespace is forwarded as given.
func (s *PortfolioService) Chat(ctx context.Context, question, knowledge string) (string, error) {
	if question == "" || knowledge == "" {
		return "", ErrMissingFields
	}
	if s.responder == nil {
		return "", ErrChatUnavailable
	}

	s.logger.Debug("chat request", "question_len", len(question), "context_len", len(knowledge))
	text, err := s.responder.Respond(ctx, chat.BuildPrompt(knowledge, question))
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrUpstream, err)
	}
	return text, nil
}
