package errutil_test

import (
	"context"
	"errors"
	"testing"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/charybdis/pkg/utils/errutil"
)

func TestHandleReturnsErrorUnchanged(t *testing.T) {
	cause := goerr.New("fetch failed",
		goerr.V("source", "github:acme"),
		goerr.V("attempt", 2),
	)

	got := errutil.Handle(context.Background(), cause, "ingest run aborted")
	if !errors.Is(got, cause) {
		t.Errorf("Handle() = %v, want the original error", got)
	}
}

func TestHandleNil(t *testing.T) {
	if got := errutil.Handle(context.Background(), nil, "nothing happened"); got != nil {
		t.Errorf("Handle(nil) = %v, want nil", got)
	}
}

func TestHandlePlainError(t *testing.T) {
	cause := errors.New("plain failure")
	if got := errutil.Handle(context.Background(), cause, "operation failed"); !errors.Is(got, cause) {
		t.Errorf("Handle() = %v, want the original error", got)
	}
}
