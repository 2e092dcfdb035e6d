package console

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/rl1809/console-cart/internal/apperrors"
	"github.com/rl1809/console-cart/internal/validator"
)

type inputLine struct {
	text string
	err  error
}

// readInput feeds scanned lines to readLine until input ends or the
// session is over. A blocked read of the underlying reader is abandoned,
// not interrupted.
func (h *Handler) readInput() {
	defer close(h.lines)

	for h.in.Scan() {
		select {
		case h.lines <- inputLine{text: h.in.Text()}:
		case <-h.done:
			return
		}
	}
	if err := h.in.Err(); err != nil {
		select {
		case h.lines <- inputLine{err: apperrors.Unexpected(err, "read input")}:
		case <-h.done:
		}
	}
}

// readLine prints prompt and returns the next trimmed input line. It
// returns io.EOF once input is exhausted and ctx.Err() once ctx is done.
func (h *Handler) readLine(ctx context.Context, prompt string) (string, error) {
	fmt.Fprint(h.out, prompt)

	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case line, ok := <-h.lines:
		if !ok {
			return "", io.EOF
		}
		if line.err != nil {
			return "", line.err
		}
		return strings.TrimSpace(line.text), nil
	}
}

func (h *Handler) promptCode(ctx context.Context, prompt string) (string, error) {
	code, err := h.readLine(ctx, prompt)
	if err != nil {
		return "", err
	}
	if err := validator.Var(code, "required,alphanum"); err != nil {
		return "", apperrors.InputFormat("INVALID_CODE",
			fmt.Sprintf("invalid code %q: only letters and digits are allowed", code))
	}
	return code, nil
}

func (h *Handler) promptQuantity(ctx context.Context, prompt string) (int, error) {
	input, err := h.readLine(ctx, prompt)
	if err != nil {
		return 0, err
	}
	if input == "" {
		return 0, apperrors.InputFormat("EMPTY_QUANTITY", "quantity must not be empty")
	}
	qty, err := strconv.Atoi(input)
	if err != nil || validator.Var(qty, "gt=0") != nil {
		return 0, apperrors.InputFormat("INVALID_QUANTITY",
			fmt.Sprintf("invalid quantity %q: must be a positive whole number", input))
	}
	return qty, nil
}

// confirm asks a yes/no question. Anything but y or yes is a no.
func (h *Handler) confirm(ctx context.Context, prompt string) (bool, error) {
	answer, err := h.readLine(ctx, prompt+" (y/n): ")
	if err != nil {
		return false, err
	}
	switch strings.ToLower(answer) {
	case "y", "yes":
		return true, nil
	default:
		return false, nil
	}
}
