package calculation

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rgehrsitz/finplan/internal/domain"
)

// DefaultAdviceTimeout bounds a single call to the advisor
const DefaultAdviceTimeout = 20 * time.Second

// Advisor produces free-text tax advice for a profile. Implementations may
// block on network I/O and should honour ctx.
type Advisor interface {
	Advise(ctx context.Context, profile domain.TaxProfile) (string, error)
}

// AdvisorFunc adapts a plain function to Advisor
type AdvisorFunc func(ctx context.Context, profile domain.TaxProfile) (string, error)

func (f AdvisorFunc) Advise(ctx context.Context, profile domain.TaxProfile) (string, error) {
	return f(ctx, profile)
}

// ErrEmptyAdvice is reported when the advisor returns only whitespace
var ErrEmptyAdvice = errors.New("advisor returned an empty response")

type adviceReply struct {
	text string
	err  error
}

// RequestAdvisory asks the advisor for narrative advice. It never returns an
// error: failures, timeouts and panics in the advisor come back as an
// unavailable Advisory carrying an explanatory message.
func RequestAdvisory(ctx context.Context, advisor Advisor, profile domain.TaxProfile, timeout time.Duration) *domain.Advisory {
	if advisor == nil {
		return unavailableAdvisory(errors.New("no advisor configured"))
	}
	if timeout <= 0 {
		timeout = DefaultAdviceTimeout
	}

	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	// Buffered so the goroutine can always finish even after we stop waiting.
	replies := make(chan adviceReply, 1)
	go func() {
		defer func() {
			if r := recover(); r != nil {
				replies <- adviceReply{err: fmt.Errorf("advisor panicked: %v", r)}
			}
		}()
		text, err := advisor.Advise(ctx, profile)
		replies <- adviceReply{text: text, err: err}
	}()

	select {
	case <-ctx.Done():
		return unavailableAdvisory(fmt.Errorf("timed out: %w", ctx.Err()))
	case reply := <-replies:
		if reply.err != nil {
			return unavailableAdvisory(reply.err)
		}
		if strings.TrimSpace(reply.text) == "" {
			return unavailableAdvisory(ErrEmptyAdvice)
		}
		return &domain.Advisory{
			Available: true,
			Raw:       reply.text,
			Tips:      ParseTips(reply.text),
		}
	}
}

func unavailableAdvisory(err error) *domain.Advisory {
	return &domain.Advisory{
		Available: false,
		Message:   fmt.Sprintf("Advisory suggestions unavailable: %v", err),
	}
}

// ParseTips splits advice text into a list of tips. Bulleted lines lose
// their marker; other non-blank lines are kept verbatim.
func ParseTips(text string) []string {
	var tips []string
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if strings.HasPrefix(line, "-") || strings.HasPrefix(line, "•") || strings.HasPrefix(line, "* ") {
			tip := strings.TrimSpace(strings.TrimLeft(line, "-•* "))
			if tip != "" {
				tips = append(tips, tip)
			}
			continue
		}
		tips = append(tips, line)
	}
	return tips
}
