package requestcontext

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"supstonad/pkg/domain"
)

func TestAccessors(t *testing.T) {
	ctx := context.Background()
	assert.Equal(t, domain.NavIdent(""), NavIdent(ctx))
	assert.Empty(t, RequestID(ctx))
	assert.Nil(t, Roller(ctx))

	fixed := time.Date(2021, 5, 1, 10, 0, 0, 0, time.UTC)
	ctx = WithNavIdent(ctx, "Z990000")
	ctx = WithRequestID(ctx, "req-1")
	ctx = WithTime(ctx, fixed)
	ctx = WithRoller(ctx, []string{"saksbehandler"})

	assert.Equal(t, domain.NavIdent("Z990000"), NavIdent(ctx))
	assert.Equal(t, "req-1", RequestID(ctx))
	assert.Equal(t, fixed, Now(ctx))
	assert.Equal(t, []string{"saksbehandler"}, Roller(ctx))
}
