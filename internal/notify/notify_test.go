package notify

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"familyspend/internal/i18n"
)

func TestRecorderKeepsOrder(t *testing.T) {
	var r Recorder
	r.Notify(Success, i18n.ExpenseAdded)
	r.Notify(Error, i18n.ErrorOccurred)

	assert.Equal(t, []i18n.Key{i18n.ExpenseAdded, i18n.ErrorOccurred}, r.Keys())
	assert.Equal(t, Error, r.Toasts()[1].Level)
}

func TestFromContext(t *testing.T) {
	var fallback, scoped Recorder

	From(context.Background(), &fallback).Notify(Info, i18n.Loading)
	ctx := WithNotifier(context.Background(), &scoped)
	From(ctx, &fallback).Notify(Success, i18n.CardAdded)

	assert.Equal(t, []i18n.Key{i18n.Loading}, fallback.Keys())
	assert.Equal(t, []i18n.Key{i18n.CardAdded}, scoped.Keys())
	assert.NotNil(t, From(context.Background(), nil))
}
