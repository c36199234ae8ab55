package domain_test

import (
	"testing"

	"github.com/archlint/archlint/internal/domain"
	"github.com/stretchr/testify/assert"
)

func TestSignatureFor_StableUnderLineShifts(t *testing.T) {
	v := domain.Violation{
		RuleID: "no-db-from-views",
		Module: "app.presentation.view",
		Target: "app.infrastructure.db",
		Line:   3,
	}
	shifted := v
	shifted.Line = 41

	assert.Equal(t, domain.SignatureFor(v), domain.SignatureFor(shifted))
}

func TestSignatureFor_DistinguishesSubjects(t *testing.T) {
	v := domain.Violation{RuleID: "r", Module: "a.b", Target: "c.d"}

	otherTarget := v
	otherTarget.Target = "c.e"
	otherRule := v
	otherRule.RuleID = "r2"
	otherModule := v
	otherModule.Module = "a.c"

	assert.NotEqual(t, domain.SignatureFor(v), domain.SignatureFor(otherTarget))
	assert.NotEqual(t, domain.SignatureFor(v), domain.SignatureFor(otherRule))
	assert.NotEqual(t, domain.SignatureFor(v), domain.SignatureFor(otherModule))
}

func TestSignatureFor_IgnoresMessageWording(t *testing.T) {
	v := domain.Violation{RuleID: "r", Module: "a", Target: "b", Message: "one wording"}
	w := v
	w.Message = "another wording"

	assert.Equal(t, domain.SignatureFor(v), domain.SignatureFor(w))
}
