package validation

import (
	"context"
	"errors"
	"time"

	"golang.org/x/text/unicode/norm"

	"stoxway.com/licserver/internal/license"
)

// Verdict classifies a (key, machine) pair against its stored license.
type Verdict string

const (
	VerdictActive           Verdict = "active"
	VerdictInvalid          Verdict = "invalid"
	VerdictDisabled         Verdict = "disabled"
	VerdictExpired          Verdict = "expired"
	VerdictDifferentMachine Verdict = "different_machine"
)

// Store is the slice of the license store the validation path needs. It is
// satisfied by *license.Service and by in-memory fakes in tests.
type Store interface {
	GetByKey(ctx context.Context, key string) (*license.License, error)
	BindMachineIfUnset(ctx context.Context, key, machineID string) (bool, error)
}

type Service struct {
	store Store
}

func NewService(store Store) *Service {
	return &Service{store: store}
}

// Validate classifies the pair, evaluating conditions in strict precedence
// order. The only side effect is the one-time machine binding, performed on
// the path that would otherwise return active. A storage failure returns a
// non-nil error and an empty verdict; it is never folded into invalid.
func (s *Service) Validate(ctx context.Context, key, machineID string) (Verdict, error) {
	if key == "" || machineID == "" {
		return VerdictInvalid, nil
	}

	// Machine ids come from clients; normalize so byte comparison against
	// the stored value is canonical.
	machineID = norm.NFC.String(machineID)

	lic, err := s.store.GetByKey(ctx, key)
	if errors.Is(err, license.ErrNotFound) {
		return VerdictInvalid, nil
	}
	if err != nil {
		return "", err
	}

	if !lic.Active {
		return VerdictDisabled, nil
	}

	// Valid through the end of the expiry date. ISO dates compare correctly
	// as strings.
	today := time.Now().Format("2006-01-02")
	if today > lic.Expiry {
		return VerdictExpired, nil
	}

	if lic.Bound() {
		if lic.MachineID.String != machineID {
			return VerdictDifferentMachine, nil
		}
		return VerdictActive, nil
	}

	bound, err := s.store.BindMachineIfUnset(ctx, key, machineID)
	if err != nil {
		return "", err
	}
	if bound {
		return VerdictActive, nil
	}

	// Lost the first-use race: another request bound the key between our
	// read and write. Resolve against the winner.
	lic, err = s.store.GetByKey(ctx, key)
	if err != nil {
		return "", err
	}
	if lic.Bound() && lic.MachineID.String == machineID {
		return VerdictActive, nil
	}
	return VerdictDifferentMachine, nil
}
