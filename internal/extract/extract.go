// Package extract runs the metadata extraction pipeline: render a prompt,
// call the model, parse and validate the response, and feed failures back
// through bounded repair cycles.
package extract

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/aipengineer/quackmetadata/internal/chunker"
	"github.com/aipengineer/quackmetadata/internal/llm"
	"github.com/aipengineer/quackmetadata/internal/metadata"
	"github.com/aipengineer/quackmetadata/internal/parse"
	"github.com/aipengineer/quackmetadata/internal/prompt"
	"github.com/aipengineer/quackmetadata/internal/retry"
	"github.com/aipengineer/quackmetadata/internal/schema"
)

// Config tunes an Extractor. Zero values fall back to embedded templates
// and conservative defaults.
type Config struct {
	Template       string // initial prompt template, "" = embedded default
	RepairTemplate string // repair prompt template, "" = embedded default
	Temperature    float64
	MaxTokens      int
	CallTimeout    time.Duration
	BackoffBase    time.Duration // delay base between attempts
	MaxPromptWords int           // document words included in the prompt
}

// Request describes one extraction call. Retries is the repair/retry
// budget shared between transient provider failures and repair cycles;
// with Retries=0 the first failed attempt is terminal.
type Request struct {
	Content string
	Source  string
	Retries int
}

// Extractor drives the extraction state machine. It is safe for
// concurrent use; each Extract call owns all of its mutable state.
type Extractor struct {
	client llm.Client
	log    *slog.Logger
	cfg    Config
}

func New(client llm.Client, log *slog.Logger, cfg Config) *Extractor {
	if cfg.Template == "" {
		cfg.Template = prompt.Default()
	}
	if cfg.RepairTemplate == "" {
		cfg.RepairTemplate = prompt.DefaultRepair()
	}
	if cfg.MaxTokens <= 0 {
		cfg.MaxTokens = 2000
	}
	if cfg.BackoffBase <= 0 {
		cfg.BackoffBase = time.Second
	}
	return &Extractor{client: client, log: log, cfg: cfg}
}

// TemplateHash identifies the active initial template, for cache keying.
func (e *Extractor) TemplateHash() string {
	return prompt.Hash(e.cfg.Template)
}

type state int

const (
	stateRender state = iota
	stateCall
	stateParse
	stateValidate
	stateRepair
)

// run holds the mutable state of one extraction call.
type run struct {
	budget     int
	attempts   int
	prompt     string
	raw        string
	payload    map[string]any
	parseFail  *parse.Failure
	violations []schema.Violation
}

// Extract executes the state machine to a terminal Result. It never
// returns an error: every failure class travels inside the Result.
func (e *Extractor) Extract(ctx context.Context, req Request) Result {
	r := &run{budget: req.Retries}
	if r.budget < 0 {
		r.budget = 0
	}

	st := stateRender
	for {
		switch st {
		case stateRender:
			content, truncated := chunker.Head(req.Content, e.cfg.MaxPromptWords)
			if truncated {
				e.log.Warn("document truncated for prompt", "source", req.Source, "max_words", e.cfg.MaxPromptWords)
			}
			rendered, err := prompt.Render(e.cfg.Template, map[string]any{"Content": content})
			if err != nil {
				return Result{Reason: ReasonConfiguration, Detail: err.Error(), Attempts: r.attempts}
			}
			r.prompt = rendered
			st = stateCall

		case stateCall:
			if ctx.Err() != nil {
				return e.cancelled(r)
			}
			r.attempts++
			e.log.Info("sending prompt to LLM", "source", req.Source, "attempt", r.attempts)
			raw, err := e.client.Chat(ctx, []llm.Message{{Role: llm.RoleUser, Content: r.prompt}}, llm.Options{
				Temperature: e.cfg.Temperature,
				MaxTokens:   e.cfg.MaxTokens,
				Timeout:     e.cfg.CallTimeout,
			})
			if err != nil {
				if ctx.Err() != nil {
					return e.cancelled(r)
				}
				if llm.IsFatal(err) {
					e.log.Error("fatal provider error", "err", err)
					return Result{Reason: ReasonFatalProvider, Detail: err.Error(), Attempts: r.attempts}
				}
				e.log.Warn("transient provider failure", "attempt", r.attempts, "err", err)
				if r.budget == 0 {
					return Result{Reason: ReasonMaxRetries, Detail: err.Error(), Attempts: r.attempts}
				}
				r.budget--
				if !e.sleep(ctx, r.attempts) {
					return e.cancelled(r)
				}
				continue // re-enter CALL with the same prompt
			}
			r.raw = raw
			st = stateParse

		case stateParse:
			r.payload, r.parseFail = parse.Extract(r.raw)
			if r.parseFail != nil {
				r.violations = nil
				st = stateRepair
				continue
			}
			st = stateValidate

		case stateValidate:
			r.violations = schema.Validate(r.payload, metadata.Fields())
			if len(r.violations) == 0 {
				return e.success(r)
			}
			st = stateRepair

		case stateRepair:
			if r.budget == 0 {
				return e.exhausted(r)
			}
			r.budget--
			rendered, err := prompt.Render(e.cfg.RepairTemplate, map[string]any{
				"Previous": repairPrevious(r.raw),
				"Problems": e.problems(r),
			})
			if err != nil {
				return Result{Reason: ReasonConfiguration, Detail: err.Error(), Attempts: r.attempts}
			}
			r.prompt = rendered
			if !e.sleep(ctx, r.attempts) {
				return e.cancelled(r)
			}
			st = stateCall
		}
	}
}

func (e *Extractor) success(r *run) Result {
	md := metadata.FromPayload(r.payload)
	if computed := metadata.CalculateRarity(md.Summary); computed != md.Rarity {
		e.log.Info("overriding model rarity", "model", md.Rarity, "computed", computed)
		md.Rarity = computed
	}
	return Result{Success: true, Metadata: &md, Attempts: r.attempts}
}

func (e *Extractor) exhausted(r *run) Result {
	res := Result{
		Reason:     ReasonMaxRetries,
		Attempts:   r.attempts,
		Violations: r.violations,
		RawSnippet: parse.Snippet(r.raw),
	}
	if r.parseFail != nil {
		res.Detail = r.parseFail.Error()
	} else {
		res.Detail = "response did not satisfy the metadata schema"
	}
	return res
}

func (e *Extractor) cancelled(r *run) Result {
	return Result{Reason: ReasonCancelled, Detail: "extraction cancelled", Attempts: r.attempts}
}

// problems phrases the last failure for the repair prompt.
func (e *Extractor) problems(r *run) string {
	if r.parseFail != nil {
		return r.parseFail.Error()
	}
	var sb strings.Builder
	for _, v := range r.violations {
		sb.WriteString("- ")
		sb.WriteString(v.String())
		sb.WriteString("\n")
	}
	return strings.TrimRight(sb.String(), "\n")
}

// repairPreviousLimit bounds how much of the prior raw output is echoed
// back into a repair prompt.
const repairPreviousLimit = 4000

func repairPrevious(raw string) string {
	raw = strings.TrimSpace(raw)
	if len(raw) <= repairPreviousLimit {
		return raw
	}
	return raw[:repairPreviousLimit] + "\n...[truncated]"
}

// sleep waits out the backoff delay, returning false if the context was
// cancelled while waiting.
func (e *Extractor) sleep(ctx context.Context, attempt int) bool {
	delay := retry.ExponentialBackoff(attempt-1, e.cfg.BackoffBase)
	select {
	case <-ctx.Done():
		return false
	case <-time.After(delay):
		return true
	}
}
