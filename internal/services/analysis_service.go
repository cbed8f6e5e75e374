package services

import (
	"context"
	"log"
	"os"
	"strings"
	"sync"
	"time"
	"unicode/utf8"

	"github.com/ajramos/mailsort/internal/classifier"
	"github.com/ajramos/mailsort/internal/config"
	"github.com/google/uuid"
)

// LoadingCaptions rotate on the loading overlay while an analysis runs
var LoadingCaptions = []string{
	"Iniciando análise...",
	"Processando o conteúdo do email...",
	"Consultando a inteligência artificial...",
	"Gerando resposta personalizada...",
	"Finalizando classificação...",
}

// AnalysisServiceImpl implements AnalysisService
type AnalysisServiceImpl struct {
	state    *AppState
	client   Classifier
	loading  LoadingView
	errors   *ErrorPresenter
	results  ResultService
	limits   config.LimitsConfig
	interval time.Duration
	logger   *log.Logger

	// mu orders overlay updates; live lists the sessions in flight, oldest
	// first, and only the newest one rotates the caption
	mu   sync.Mutex
	live []uuid.UUID
}

// loadingSession owns the caption ticker of one analysis
type loadingSession struct {
	id      uuid.UUID
	started time.Time
	ticker  *time.Ticker
	stop    chan struct{}
	done    chan struct{}
}

// NewAnalysisService creates a new analysis service
func NewAnalysisService(state *AppState, client Classifier, loading LoadingView, errors *ErrorPresenter,
	results ResultService, limits config.LimitsConfig, interval time.Duration, logger *log.Logger) *AnalysisServiceImpl {
	if interval <= 0 {
		interval = 1500 * time.Millisecond
	}
	return &AnalysisServiceImpl{
		state:    state,
		client:   client,
		loading:  loading,
		errors:   errors,
		results:  results,
		limits:   limits,
		interval: interval,
		logger:   logger,
	}
}

// Analyze submits the current input. Any failure is shown in the error
// banner and returned; the loading overlay is always hidden last.
func (s *AnalysisServiceImpl) Analyze(ctx context.Context) error {
	session := s.startLoading()
	defer s.endLoading(session)

	var res *classifier.Result
	req, err := s.buildRequest()
	if err == nil {
		res, err = s.client.Classify(ctx, req)
	}
	if err != nil {
		if !IsValidationError(err) {
			s.logf("analysis %s failed: %v", session.id, err)
		}
		s.errors.Show(MsgAnalysisPrefix + UserMessage(err))
		return err
	}

	s.results.Render(res)
	return nil
}

func (s *AnalysisServiceImpl) buildRequest() (classifier.Request, error) {
	switch s.state.Mode() {
	case ModeFile:
		file := s.state.File()
		if file == nil {
			return classifier.Request{}, newValidationError(MsgNoFile)
		}
		data, err := os.ReadFile(file.Path)
		if err != nil {
			s.logf("read %s: %v", file.Path, err)
			return classifier.Request{}, newValidationError(MsgUnreadableFile + file.Path)
		}
		return classifier.Request{File: &classifier.FilePart{
			Name:        file.Name,
			ContentType: file.ContentType,
			Data:        data,
		}}, nil

	case ModeText:
		text := strings.TrimSpace(s.state.Text())
		if text == "" {
			return classifier.Request{}, newValidationError(MsgNoText)
		}
		if utf8.RuneCountInString(text) > s.limits.MaxTextChars {
			return classifier.Request{}, newValidationError(MsgTextTooLong)
		}
		return classifier.Request{Text: text}, nil
	}
	return classifier.Request{}, newValidationError(MsgNoFile)
}

func (s *AnalysisServiceImpl) startLoading() *loadingSession {
	s.errors.Clear()
	s.results.Clear()

	session := &loadingSession{
		id:      uuid.New(),
		started: time.Now(),
		ticker:  time.NewTicker(s.interval),
		stop:    make(chan struct{}),
		done:    make(chan struct{}),
	}

	s.mu.Lock()
	s.live = append(s.live, session.id)
	s.state.beginLoading()
	s.loading.ShowLoading(LoadingCaptions[0])
	s.mu.Unlock()

	s.logf("analysis %s started (mode=%s)", session.id, s.state.Mode())
	go s.rotate(session)
	return session
}

func (s *AnalysisServiceImpl) rotate(session *loadingSession) {
	defer close(session.done)
	idx := 0
	for {
		select {
		case <-session.stop:
			return
		case <-session.ticker.C:
			idx = (idx + 1) % len(LoadingCaptions)
			s.mu.Lock()
			if s.newestLocked() == session.id {
				s.loading.SetLoadingCaption(LoadingCaptions[idx])
			}
			s.mu.Unlock()
		}
	}
}

// newestLocked returns the most recent session still in flight. Callers
// hold s.mu.
func (s *AnalysisServiceImpl) newestLocked() uuid.UUID {
	if len(s.live) == 0 {
		return uuid.Nil
	}
	return s.live[len(s.live)-1]
}

// endLoading stops the ticker and waits for the rotation goroutine before
// the overlay goes away, so no caption can change after it is hidden. When
// other sessions remain, the newest of them takes over the rotation.
func (s *AnalysisServiceImpl) endLoading(session *loadingSession) {
	session.ticker.Stop()
	close(session.stop)
	<-session.done

	s.mu.Lock()
	for i, id := range s.live {
		if id == session.id {
			s.live = append(s.live[:i], s.live[i+1:]...)
			break
		}
	}
	if s.state.endLoading() == 0 {
		s.loading.HideLoading()
	}
	s.mu.Unlock()

	s.logf("analysis %s finished in %s", session.id, time.Since(session.started).Round(time.Millisecond))
}

func (s *AnalysisServiceImpl) logf(format string, args ...interface{}) {
	if s.logger != nil {
		s.logger.Printf(format, args...)
	}
}
