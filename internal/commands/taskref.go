package commands

import (
	"errors"
	"fmt"
	"strconv"
	"unicode"

	"taskboard/internal/service"
)

// ErrCardRefRequired indicates no card number was provided.
var ErrCardRefRequired = errors.New("card number required")

// ParseCardRef parses the 1-based card number that addresses a listed task.
// Exactly one all-digit argument is accepted.
func ParseCardRef(args []string) (int, error) {
	if len(args) == 0 {
		return 0, ErrCardRefRequired
	}
	if len(args) > 1 {
		return 0, fmt.Errorf("unexpected argument: %s", args[1])
	}

	ref := args[0]
	if !isAllDigits(ref) {
		return 0, fmt.Errorf("invalid card number: %s", ref)
	}
	num, err := strconv.Atoi(ref)
	if err != nil {
		return 0, fmt.Errorf("invalid card number: %s", ref)
	}
	return num, nil
}

// isAllDigits returns true if s consists only of ASCII digits and is non-empty.
func isAllDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r > unicode.MaxASCII || !unicode.IsDigit(r) {
			return false
		}
	}
	return true
}

// cardByNumber returns the task shown on card num (1-based, collection order).
func cardByNumber(tasks []service.Task, num int) (service.Task, error) {
	if num < 1 || num > len(tasks) {
		return service.Task{}, fmt.Errorf("card number out of range: %d", num)
	}
	return tasks[num-1], nil
}
