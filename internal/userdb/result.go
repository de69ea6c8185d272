package userdb

import (
	"github.com/hongminglow/quantum-trade/internal/i18n"
	"github.com/hongminglow/quantum-trade/internal/models"
)

// Outcome classifies the result of a store operation.
type Outcome string

const (
	OutcomeOK                 Outcome = "ok"
	OutcomeDuplicateEmail     Outcome = "duplicate_email"
	OutcomeInvalidCredentials Outcome = "invalid_credentials"
)

// Result is what register, login and logout report to the caller. Failures the
// user can cause are results, not errors.
type Result struct {
	Success bool
	Outcome Outcome
	// MessageKey selects the localized text; Message is its English rendering.
	MessageKey i18n.Key
	Message    string
	User       *models.User
}

// Err returns the sentinel error for a failed result, or nil on success.
func (r Result) Err() error {
	switch r.Outcome {
	case OutcomeDuplicateEmail:
		return ErrDuplicateEmail
	case OutcomeInvalidCredentials:
		return ErrInvalidCredentials
	default:
		return nil
	}
}

func succeeded(key i18n.Key, user *models.User) Result {
	return Result{Success: true, Outcome: OutcomeOK, MessageKey: key, Message: i18n.Text(i18n.English, key), User: user}
}

func failed(outcome Outcome, key i18n.Key) Result {
	return Result{Outcome: outcome, MessageKey: key, Message: i18n.Text(i18n.English, key)}
}
