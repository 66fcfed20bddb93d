package handler

import (
	"sync"
	"testing"
)

func TestValidator_ReportsQueryFieldName(t *testing.T) {
	err := NewValidator().Validate(&listInvoicesQuery{Status: "overdue"})
	if err == nil {
		t.Fatal("expected validation error")
	}
	if got, want := err.Error(), "status must be one of: pending paid"; got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestValidator_ConcurrentConstruction(t *testing.T) {
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			v := NewValidator()
			if err := v.Validate(&listInvoicesQuery{Status: "paid"}); err != nil {
				t.Errorf("unexpected error: %v", err)
			}
			if err := v.Validate(&listInvoicesQuery{Status: "void"}); err == nil {
				t.Error("expected validation error")
			}
		}()
	}
	wg.Wait()
}
