package service

import (
	"testing"
	"time"
)

func TestQuota_AllowsUpToLimit(t *testing.T) {
	q := NewQuotaService(5, time.Minute)

	for i := 0; i < 5; i++ {
		if !q.Reserve("client-a") {
			t.Fatalf("request %d should be allowed", i+1)
		}
	}
}

func TestQuota_BlocksSixthRequest(t *testing.T) {
	q := NewQuotaService(5, time.Minute)

	for i := 0; i < 5; i++ {
		q.Reserve("client-a")
	}

	if q.Reserve("client-a") {
		t.Fatal("6th request should be blocked")
	}
}

func TestQuota_DifferentKeysIndependent(t *testing.T) {
	q := NewQuotaService(2, time.Minute)

	q.Reserve("client-a")
	q.Reserve("client-a")

	if q.Reserve("client-a") {
		t.Fatal("client-a should be exhausted")
	}
	if !q.Reserve("client-b") {
		t.Fatal("client-b should be allowed (independent key)")
	}
}

func TestQuota_WindowResets(t *testing.T) {
	q := NewQuotaService(2, 50*time.Millisecond)

	q.Reserve("client-a")
	q.Reserve("client-a")

	if q.Reserve("client-a") {
		t.Fatal("should be blocked within window")
	}

	time.Sleep(60 * time.Millisecond)

	if !q.Reserve("client-a") {
		t.Fatal("should be allowed after window reset")
	}
}

func TestQuota_ReleaseReturnsSlot(t *testing.T) {
	q := NewQuotaService(1, time.Minute)

	if !q.Reserve("client-a") {
		t.Fatal("1st reserve should succeed")
	}
	if q.Reserve("client-a") {
		t.Fatal("2nd reserve should fail while slot is held")
	}

	// Downstream failure: slot is given back, client is not charged.
	q.Release("client-a")

	if !q.Reserve("client-a") {
		t.Fatal("reserve should succeed again after release")
	}
}

func TestQuota_ReleaseUnknownKeyIsNoop(t *testing.T) {
	q := NewQuotaService(1, time.Minute)
	q.Release("never-seen")

	if !q.Reserve("never-seen") {
		t.Fatal("reserve should succeed for fresh key")
	}
}

func TestQuota_Remaining(t *testing.T) {
	q := NewQuotaService(5, time.Minute)

	if got := q.Remaining("client-a"); got != 5 {
		t.Errorf("fresh key remaining = %d, want 5", got)
	}

	q.Reserve("client-a")
	q.Reserve("client-a")

	if got := q.Remaining("client-a"); got != 3 {
		t.Errorf("remaining = %d, want 3", got)
	}
}
