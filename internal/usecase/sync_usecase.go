package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/Thesaidctm/automate/internal/domain"
)

// SyncConfig holds the collaborators of SyncUseCase.
type SyncConfig struct {
	Page        Page
	Recorder    OutcomeRecorder
	Diagnostics DiagnosticStore
	Retrier     Retrier
	Metrics     Metrics
	Selectors   Selectors
	Options     Options
	Logger      zerolog.Logger
}

// SyncUseCase drives every instruction through list check, verified open, form check,
// verified write and save, one record at a time on one page.
type SyncUseCase struct {
	page        Page
	recorder    OutcomeRecorder
	diagnostics DiagnosticStore
	retrier     Retrier
	metrics     Metrics
	sel         Selectors
	opts        Options
	logger      zerolog.Logger

	locator  *RowLocator
	verifier *IdentityVerifier
	field    *PriceField
	nav      *Navigator
}

// NewSyncUseCase creates a new SyncUseCase.
func NewSyncUseCase(cfg SyncConfig) *SyncUseCase {
	metrics := cfg.Metrics
	if metrics == nil {
		metrics = noopMetrics{}
	}

	return &SyncUseCase{
		page:        cfg.Page,
		recorder:    cfg.Recorder,
		diagnostics: cfg.Diagnostics,
		retrier:     cfg.Retrier,
		metrics:     metrics,
		sel:         cfg.Selectors,
		opts:        cfg.Options,
		logger:      cfg.Logger,
		locator:     NewRowLocator(cfg.Page, cfg.Selectors, cfg.Options, cfg.Logger),
		verifier:    NewIdentityVerifier(cfg.Page, cfg.Selectors, cfg.Options),
		field:       NewPriceField(cfg.Page, cfg.Selectors, cfg.Options, cfg.Retrier, metrics, cfg.Logger),
		nav:         NewNavigator(cfg.Page, cfg.Selectors, cfg.Options, metrics, cfg.Logger),
	}
}

// Summary counts the outcomes of a run.
type Summary struct {
	Total     int
	Succeeded int
	Skipped   int
	Failed    int
	ListURL   string
}

func (s *Summary) add(status domain.Status) {
	switch status {
	case domain.StatusSuccess:
		s.Succeeded++
	case domain.StatusSkipped:
		s.Skipped++
	default:
		s.Failed++
	}
}

// Run processes instructions in order and records exactly one outcome for each.
// Per-record failures never stop the run; it only fails when the list is not usable
// at start or an outcome cannot be recorded.
func (uc *SyncUseCase) Run(ctx context.Context, instructions []domain.Instruction) (Summary, error) {
	if err := uc.nav.WaitListReady(ctx); err != nil {
		return Summary{}, fmt.Errorf("%w: %v", domain.ErrSessionUnavailable, err)
	}
	listURL, err := uc.page.URL(ctx)
	if err != nil {
		return Summary{}, fmt.Errorf("%w: read list url: %v", domain.ErrSessionUnavailable, err)
	}

	uc.logger.Info().
		Int("instructions", len(instructions)).
		Str("list_url", listURL).
		Msg("starting sync")

	summary := Summary{Total: len(instructions)}
	for _, ins := range instructions {
		var outcome domain.Outcome
		if ctx.Err() != nil {
			outcome = domain.Outcome{
				Code:    ins.Code,
				Target:  ins.Target,
				Status:  domain.StatusFailed,
				Message: domain.ErrCanceled.Error(),
				Err:     domain.ErrCanceled,
			}
			uc.metrics.ObserveOutcome(outcome.Status, domain.Kind(outcome.Err), 0)
		} else {
			outcome, listURL = uc.Process(ctx, ins, listURL)
		}

		if err := uc.recorder.Record(context.WithoutCancel(ctx), outcome); err != nil {
			return summary, fmt.Errorf("record outcome for %s: %w", ins.Code, err)
		}
		summary.add(outcome.Status)
	}

	summary.ListURL = listURL
	return summary, nil
}

// Process synchronizes one instruction starting from the list at listURL. It returns
// the outcome and the list URL baseline for the next instruction.
func (uc *SyncUseCase) Process(ctx context.Context, ins domain.Instruction, listURL string) (outcome domain.Outcome, nextURL string) {
	start := time.Now()
	logger := uc.logger.With().Str("code", ins.Code).Str("target", ins.TargetText()).Logger()
	onForm := false

	defer func() {
		if r := recover(); r != nil {
			outcome = uc.fail(ctx, logger, ins, fmt.Errorf("unexpected failure: %v", r))
			nextURL = uc.restoreList(ctx, logger, listURL, true)
		}
		uc.metrics.ObserveOutcome(outcome.Status, domain.Kind(outcome.Err), time.Since(start))
	}()

	status, message, next, err := uc.synchronize(ctx, logger, ins, listURL, &onForm)
	if err != nil {
		outcome = uc.fail(ctx, logger, ins, err)
		return outcome, uc.restoreList(ctx, logger, listURL, onForm)
	}

	logger.Info().Str("status", string(status)).Msg(message)
	return domain.Outcome{
		Code:    ins.Code,
		Target:  ins.Target,
		Status:  status,
		Message: message,
	}, next
}

func (uc *SyncUseCase) synchronize(
	ctx context.Context,
	logger zerolog.Logger,
	ins domain.Instruction,
	listURL string,
	onForm *bool,
) (domain.Status, string, string, error) {
	// 1. List view idempotence
	row, found, err := uc.locator.Locate(ctx, ins.Code)
	if err != nil {
		return "", "", "", err
	}
	if !found {
		return "", "", "", fmt.Errorf("%w: %q not located after scrolling", domain.ErrRowNotFound, ins.Code)
	}
	_ = row.ScrollIntoView(ctx)

	text, _ := row.Text(ctx)
	if domain.ShowsAmount(text, ins.Code, ins.Target) {
		return domain.StatusSkipped, "already correct in the list view", listURL, nil
	}

	// 2. Open the right record
	if err := uc.openVerified(ctx, logger, ins.Code, listURL, onForm); err != nil {
		return "", "", "", err
	}

	editURL, err := uc.page.URL(ctx)
	if err != nil {
		return "", "", "", fmt.Errorf("read edit url: %w", err)
	}

	// 3. Form idempotence
	input, err := uc.field.Find(ctx)
	if err != nil {
		return "", "", "", err
	}
	current, raw, ok := uc.field.Read(ctx, input)
	if ok && domain.SameAmount(current, ins.Target) {
		next, err := uc.nav.SaveAndReturn(ctx, listURL, editURL)
		if err != nil {
			return "", "", "", err
		}
		*onForm = false
		return domain.StatusSkipped, "already correct in the form", next, nil
	}
	logger.Debug().Str("current", raw).Msg("price differs")

	// 4. Write with read-back
	if err := uc.field.Write(ctx, input, ins.Target); err != nil {
		return "", "", "", err
	}

	// 5. Save and return
	next, err := uc.nav.SaveAndReturn(ctx, listURL, editURL)
	if err != nil {
		return "", "", "", err
	}
	*onForm = false
	return domain.StatusSuccess, "updated", next, nil
}

// openVerified clicks the row's edit affordance and checks the opened record,
// returning to the list and retrying while the wrong record opens.
func (uc *SyncUseCase) openVerified(ctx context.Context, logger zerolog.Logger, code, listURL string, onForm *bool) error {
	return uc.retrier.Retry(ctx, uc.opts.IdentityRetries+1, func(attempt int) error {
		if attempt > 0 {
			uc.metrics.IdentityRetry()
		}

		row, found, err := uc.locator.Locate(ctx, code)
		if err != nil {
			return err
		}
		if !found {
			return fmt.Errorf("%w: %q not located before opening", domain.ErrRowNotFound, code)
		}
		_ = row.ScrollIntoView(ctx)

		edit, err := ChainOf(uc.sel.EditInRow...).First(ctx, row)
		if err != nil {
			return err
		}
		if edit == nil {
			logger.Debug().Msg("no edit affordance in row, using first page marker")
			edit, err = ChainOf(uc.sel.EditOnPage...).First(ctx, uc.page)
			if err != nil {
				return err
			}
		}
		if edit == nil {
			return fmt.Errorf("%w: row %q", domain.ErrEditNotFound, code)
		}

		if err := edit.Click(ctx); err != nil {
			return fmt.Errorf("click edit: %w", err)
		}
		*onForm = true

		if err := uc.page.WaitDOMReady(ctx, uc.opts.ListReadyTimeout); err != nil && ctx.Err() != nil {
			return ctx.Err()
		}

		id, ok, err := uc.verifier.Verify(ctx, code)
		if err != nil {
			return err
		}
		if ok {
			return nil
		}

		logger.Warn().Str("opened", id.String()).Int("attempt", attempt+1).Msg("wrong record opened")
		if err := uc.nav.BackToList(ctx, listURL); err != nil {
			return fmt.Errorf("return to list after opening %s: %w", id, err)
		}
		*onForm = false

		return fmt.Errorf("%w: opened %s instead of %s", domain.ErrIdentityMismatch, id, code)
	})
}

// fail builds the failed outcome and attaches a page snapshot when one can be taken.
func (uc *SyncUseCase) fail(ctx context.Context, logger zerolog.Logger, ins domain.Instruction, err error) domain.Outcome {
	outcome := domain.Outcome{
		Code:    ins.Code,
		Target:  ins.Target,
		Status:  domain.StatusFailed,
		Message: cleanMessage(err.Error()),
		Err:     err,
	}

	name, captureErr := uc.capture(ctx, ins.Code)
	if captureErr != nil {
		logger.Warn().Err(captureErr).Msg("screenshot failed")
		outcome.Message += " (screenshot failed)"
	} else {
		outcome.Diagnostic = name
		outcome.Message += fmt.Sprintf(" (screenshot: %s)", name)
	}

	logger.Error().Err(err).Str("kind", domain.Kind(err)).Msg("record failed")
	return outcome
}

func (uc *SyncUseCase) capture(ctx context.Context, code string) (string, error) {
	if uc.diagnostics == nil {
		return "", fmt.Errorf("no diagnostics store")
	}
	png, err := uc.page.Screenshot(ctx)
	if err != nil {
		return "", err
	}
	return uc.diagnostics.Save(code, png)
}

// restoreList reopens the list when a failure left the page on the edit surface.
// Nothing is saved on the way out.
func (uc *SyncUseCase) restoreList(ctx context.Context, logger zerolog.Logger, listURL string, onForm bool) string {
	if !onForm || ctx.Err() != nil {
		return listURL
	}
	if err := uc.nav.BackToList(ctx, listURL); err != nil {
		logger.Error().Err(err).Msg("could not return to list")
	}
	return listURL
}

func cleanMessage(msg string) string {
	msg = strings.NewReplacer("\r\n", " ", "\n", " ", "\r", " ").Replace(msg)
	if r := []rune(msg); len(r) > MaxMessageLength {
		msg = string(r[:MaxMessageLength])
	}
	return msg
}
