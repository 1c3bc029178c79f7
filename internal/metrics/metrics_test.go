package metrics

import (
	"errors"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/mmynk/minibank/internal/models"
)

func TestRecorderObserve(t *testing.T) {
	r := New()

	r.Observe(OpDeposit, nil)
	r.Observe(OpDeposit, nil)
	r.Observe(OpDeposit, models.InvalidArgument("bad amount"))
	r.Observe(OpWithdraw, models.NoSession("no user"))
	r.Observe(OpAuthenticate, models.InvalidArgument("bad password"))

	tests := []struct {
		op, result string
		want       float64
	}{
		{OpDeposit, ResultOK, 2},
		{OpDeposit, ResultInvalidArgument, 1},
		{OpWithdraw, ResultNoSession, 1},
		{OpAuthenticate, ResultInvalidArgument, 1},
	}
	for _, tt := range tests {
		got := testutil.ToFloat64(r.operations.WithLabelValues(tt.op, tt.result))
		if got != tt.want {
			t.Errorf("operations{%s,%s} = %v, want %v", tt.op, tt.result, got, tt.want)
		}
	}

	if got := r.OperationCount(OpDeposit, ResultOK); got != 2 {
		t.Errorf("OperationCount(deposit, ok) = %v, want 2", got)
	}
	if got := r.AuthFailureCount(); got != 1 {
		t.Errorf("auth failures = %v, want 1", got)
	}

	if n, err := testutil.GatherAndCount(r.Registry(), "minibank_operations_total"); err != nil || n != 4 {
		t.Errorf("gathered %d series (err %v), want 4", n, err)
	}
}

func TestResultOf(t *testing.T) {
	if got := ResultOf(errors.New("disk on fire")); got != ResultError {
		t.Errorf("ResultOf(plain) = %q, want %q", got, ResultError)
	}
}

func TestNilRecorder(t *testing.T) {
	var r *Recorder
	r.Observe(OpDeposit, nil)
	if r.OperationCount(OpDeposit, ResultOK) != 0 || r.AuthFailureCount() != 0 {
		t.Error("nil recorder should report zero counts")
	}
	if r.Registry() != nil {
		t.Error("nil recorder should have no registry")
	}
}
