package editor

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"time"

	"github.com/vbonduro/paani/internal/domain"
)

// NoticeDuration is how long the "saved" notice stays visible.
const NoticeDuration = 3 * time.Second

const savedNotice = "Changes saved successfully!"

var (
	ErrNotReady             = errors.New("editor is not ready")
	ErrNoPendingRemoval     = errors.New("no removal awaiting confirmation")
	ErrAlreadyAuthenticated = errors.New("already logged in or logging in")
)

type State int

const (
	StateUnauthenticated State = iota
	StateLoading
	StateReady
	StateSaving
)

func (s State) String() string {
	switch s {
	case StateUnauthenticated:
		return "unauthenticated"
	case StateLoading:
		return "loading"
	case StateReady:
		return "ready"
	case StateSaving:
		return "saving"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// API is the subset of the portfolio API the editor drives.
// *client.Client implements it.
type API interface {
	Login(ctx context.Context, password string) error
	GetPortfolio(ctx context.Context) (*domain.PortfolioDocument, error)
	SavePortfolio(ctx context.Context, doc *domain.PortfolioDocument) error
	Upload(ctx context.Context, filename string, r io.Reader) (string, error)
}

type ListKind int

const (
	ListProjects ListKind = iota
	ListPhotos
	ListVideos
)

// Target identifies one item in the document by list and position.
type Target struct {
	List     ListKind
	Category domain.CaseStudyCategory // ListProjects only
	Index    int
}

func ProjectAt(category domain.CaseStudyCategory, index int) Target {
	return Target{List: ListProjects, Category: category, Index: index}
}

func PhotoAt(index int) Target { return Target{List: ListPhotos, Index: index} }

func VideoAt(index int) Target { return Target{List: ListVideos, Index: index} }

// Confirmation is shown to the user before a removal is applied.
type Confirmation struct {
	Title   string
	Message string
	target  Target
}

type notice struct {
	message string
	expires time.Time
}

// Session holds one admin's working copy. Edits replace the working copy with
// a new snapshot; nothing reaches the server until Save.
type Session struct {
	api    API
	ids    *IDGenerator
	now    func() time.Time
	logger *slog.Logger

	mu        sync.Mutex
	state     State
	doc       *domain.PortfolioDocument
	pending   *Confirmation
	notice    *notice
	uploading int
}

func NewSession(api API, logger *slog.Logger) *Session {
	return &Session{
		api:       api,
		ids:       NewIDGenerator(),
		now:       time.Now,
		logger:    logger,
		uploading: -1,
	}
}

func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Document returns a copy of the working document, or nil before loading.
func (s *Session) Document() *domain.PortfolioDocument {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.doc.Clone()
}

// Login verifies password with the server, then loads the document. Only one
// login may run; a failed password check or load returns the session to
// Unauthenticated.
func (s *Session) Login(ctx context.Context, password string) error {
	s.mu.Lock()
	if s.state != StateUnauthenticated {
		s.mu.Unlock()
		return ErrAlreadyAuthenticated
	}
	s.state = StateLoading
	s.mu.Unlock()

	if err := s.api.Login(ctx, password); err != nil {
		s.setState(StateUnauthenticated)
		return fmt.Errorf("login failed: %w", err)
	}

	doc, err := s.api.GetPortfolio(ctx)
	if err != nil {
		s.setState(StateUnauthenticated)
		s.logger.Error("failed to fetch portfolio", "error", err)
		return fmt.Errorf("failed to fetch portfolio: %w", err)
	}
	doc.Normalize()

	s.mu.Lock()
	s.doc = doc
	s.state = StateReady
	s.mu.Unlock()
	return nil
}

func (s *Session) setState(st State) {
	s.mu.Lock()
	s.state = st
	s.mu.Unlock()
}

// edit applies fn to the working copy while Ready.
func (s *Session) edit(fn func(*domain.PortfolioDocument) (*domain.PortfolioDocument, error)) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != StateReady {
		return fmt.Errorf("%w: %s", ErrNotReady, s.state)
	}
	next, err := fn(s.doc)
	if err != nil {
		return err
	}
	s.doc = next
	return nil
}

func (s *Session) UpdateProject(category domain.CaseStudyCategory, index int, field ProjectField, value string) error {
	return s.edit(func(d *domain.PortfolioDocument) (*domain.PortfolioDocument, error) {
		return UpdateProject(d, category, index, field, value)
	})
}

func (s *Session) AddProject(category domain.CaseStudyCategory) error {
	return s.edit(func(d *domain.PortfolioDocument) (*domain.PortfolioDocument, error) {
		return AddProject(d, category)
	})
}

func (s *Session) UpdatePhoto(index int, field PhotoField, value string) error {
	return s.edit(func(d *domain.PortfolioDocument) (*domain.PortfolioDocument, error) {
		return UpdatePhoto(d, index, field, value)
	})
}

func (s *Session) AddPhoto() error {
	return s.edit(func(d *domain.PortfolioDocument) (*domain.PortfolioDocument, error) {
		return AddPhoto(d, s.ids.Next()), nil
	})
}

func (s *Session) UpdateVideo(index int, field VideoField, value string) error {
	return s.edit(func(d *domain.PortfolioDocument) (*domain.PortfolioDocument, error) {
		return UpdateVideo(d, index, field, value)
	})
}

func (s *Session) AddVideo() error {
	return s.edit(func(d *domain.PortfolioDocument) (*domain.PortfolioDocument, error) {
		return AddVideo(d, s.ids.Next()), nil
	})
}

// RequestRemoval stages the removal of t. Nothing changes until Confirm. A
// new request replaces any pending one.
func (s *Session) RequestRemoval(t Target) (Confirmation, error) {
	var c Confirmation
	switch t.List {
	case ListProjects:
		c = Confirmation{
			Title:   "Delete Project?",
			Message: "Are you sure you want to remove this project? This action cannot be undone.",
		}
	case ListPhotos:
		c = Confirmation{
			Title:   "Delete Photo?",
			Message: "Are you sure you want to remove this photo from the gallery?",
		}
	case ListVideos:
		c = Confirmation{
			Title:   "Delete Video?",
			Message: "Are you sure you want to remove this video from the showcase?",
		}
	default:
		return Confirmation{}, fmt.Errorf("unknown list %d", t.List)
	}
	c.target = t

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != StateReady {
		return Confirmation{}, fmt.Errorf("%w: %s", ErrNotReady, s.state)
	}
	s.pending = &c
	return c, nil
}

// Pending returns the removal awaiting confirmation, if any.
func (s *Session) Pending() (Confirmation, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.pending == nil {
		return Confirmation{}, false
	}
	return *s.pending, true
}

// Confirm applies the pending removal.
func (s *Session) Confirm() error {
	s.mu.Lock()
	c := s.pending
	s.pending = nil
	s.mu.Unlock()
	if c == nil {
		return ErrNoPendingRemoval
	}

	t := c.target
	return s.edit(func(d *domain.PortfolioDocument) (*domain.PortfolioDocument, error) {
		switch t.List {
		case ListProjects:
			return RemoveProject(d, t.Category, t.Index)
		case ListPhotos:
			return RemovePhoto(d, t.Index)
		default:
			return RemoveVideo(d, t.Index)
		}
	})
}

// Cancel discards the pending removal.
func (s *Session) Cancel() {
	s.mu.Lock()
	s.pending = nil
	s.mu.Unlock()
}

// Save posts the whole working copy. On failure the working copy is left as
// it was and the returned error carries the server's error and details.
func (s *Session) Save(ctx context.Context) error {
	s.mu.Lock()
	if s.state != StateReady {
		st := s.state
		s.mu.Unlock()
		return fmt.Errorf("%w: %s", ErrNotReady, st)
	}
	s.state = StateSaving
	doc := s.doc.Clone()
	s.mu.Unlock()

	err := s.api.SavePortfolio(ctx, doc)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = StateReady
	if err != nil {
		s.logger.Error("save failed", "error", err)
		return fmt.Errorf("failed to update portfolio: %w", err)
	}
	s.notice = &notice{message: savedNotice, expires: s.now().Add(NoticeDuration)}
	return nil
}

// Notice returns the current transient notice, if it has not expired.
func (s *Session) Notice() (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.notice == nil || !s.now().Before(s.notice.expires) {
		s.notice = nil
		return "", false
	}
	return s.notice.message, true
}

// Uploading reports the list index of the upload in flight. Only one index is
// tracked; a second concurrent upload overwrites it.
func (s *Session) Uploading() (int, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.uploading, s.uploading >= 0
}

// UploadPhotoImage uploads r and writes the returned URL into the photo's src.
func (s *Session) UploadPhotoImage(ctx context.Context, index int, filename string, r io.Reader) error {
	return s.upload(ctx, index, filename, r, func(d *domain.PortfolioDocument, url string) (*domain.PortfolioDocument, error) {
		return UpdatePhoto(d, index, PhotoSrc, url)
	})
}

// UploadProjectImage uploads r and writes the returned URL into the project's
// image.
func (s *Session) UploadProjectImage(ctx context.Context, category domain.CaseStudyCategory, index int, filename string, r io.Reader) error {
	return s.upload(ctx, index, filename, r, func(d *domain.PortfolioDocument, url string) (*domain.PortfolioDocument, error) {
		return UpdateProject(d, category, index, ProjectImage, url)
	})
}

func (s *Session) upload(ctx context.Context, index int, filename string, r io.Reader, apply func(*domain.PortfolioDocument, string) (*domain.PortfolioDocument, error)) error {
	s.mu.Lock()
	if s.state != StateReady {
		st := s.state
		s.mu.Unlock()
		return fmt.Errorf("%w: %s", ErrNotReady, st)
	}
	s.uploading = index
	s.mu.Unlock()

	url, err := s.api.Upload(ctx, filename, r)

	s.mu.Lock()
	s.uploading = -1
	s.mu.Unlock()
	if err != nil {
		s.logger.Error("upload failed", "filename", filename, "error", err)
		return fmt.Errorf("failed to upload image: %w", err)
	}

	return s.edit(func(d *domain.PortfolioDocument) (*domain.PortfolioDocument, error) {
		return apply(d, url)
	})
}
