// Package intake conduz as operações de vários campos (cadastro, reserva e liberação)
// como máquinas de estado lineares: cada entrada avança um campo, e uma entrada sentinela
// leva ao estado terminal Cancelled, descartando o que já foi coletado.
package intake

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"unicode"

	"github.com/mateusmacedo/go-bus-reservation/internal/reservation/domain"
)

type Status int

const (
	InProgress Status = iota
	Completed
	Cancelled
	Failed
)

func (s Status) String() string {
	switch s {
	case InProgress:
		return "in_progress"
	case Completed:
		return "completed"
	case Cancelled:
		return "cancelled"
	case Failed:
		return "failed"
	}
	return "unknown"
}

var ErrFlowFinished = errors.New("flow already finished")

type step struct {
	prompt string
	apply  func(ctx context.Context, input string) error
}

// flow é o motor comum; cada fluxo concreto define seus passos e como descartar o estado.
type flow struct {
	steps  []step
	pos    int
	status Status
	err    error
	reset  func()
}

func (f *flow) Step(ctx context.Context, input string) (Status, error) {
	if f.status != InProgress {
		return f.status, ErrFlowFinished
	}

	if err := f.steps[f.pos].apply(ctx, input); err != nil {
		f.err = err
		f.status = Failed
		if errors.Is(err, domain.ErrCancelled) {
			f.status = Cancelled
		}
		f.reset()
		return f.status, err
	}

	f.pos++
	if f.pos == len(f.steps) {
		f.status = Completed
	}
	return f.status, nil
}

func (f *flow) Status() Status {
	return f.status
}

func (f *flow) Err() error {
	return f.err
}

// Prompt devolve o texto do campo esperado, ou "" quando o fluxo terminou.
func (f *flow) Prompt() string {
	if f.status != InProgress {
		return ""
	}
	return f.steps[f.pos].prompt
}

// Run alimenta o fluxo com as entradas em ordem e para no primeiro estado terminal.
func Run(ctx context.Context, f interface {
	Step(ctx context.Context, input string) (Status, error)
}, inputs ...string) (Status, error) {
	status := InProgress
	for _, input := range inputs {
		var err error
		status, err = f.Step(ctx, input)
		if err != nil || status != InProgress {
			return status, err
		}
	}
	return status, nil
}

// ParseSeatNumber aplica o contrato de fronteira para o número do assento:
// sentinela cancela, texto não numérico é ErrInvalidInput e fora de 1..32 é ErrInvalidSeat.
func ParseSeatNumber(input string) (int, error) {
	input = strings.TrimSpace(input)
	if domain.IsSentinel(input) {
		return 0, domain.ErrCancelled
	}

	n, err := strconv.Atoi(input)
	if err != nil {
		return 0, domain.ErrInvalidInput
	}
	if n == 0 {
		return 0, domain.ErrCancelled
	}
	if _, _, err := domain.SeatPosition(n); err != nil {
		return 0, err
	}
	return n, nil
}

// IsAffirmative aceita qualquer resposta cujo primeiro caractere não branco seja 'y'.
func IsAffirmative(input string) bool {
	for _, r := range input {
		if unicode.IsSpace(r) {
			continue
		}
		return unicode.ToLower(r) == 'y'
	}
	return false
}
