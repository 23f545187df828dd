package main

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/rs/zerolog"

	"github.com/carehub/patient-portal/internal/core/domain"
	"github.com/carehub/patient-portal/internal/pkg/config"
)

func TestOpenStores_Memory(t *testing.T) {
	var buf bytes.Buffer
	log := zerolog.New(&buf)

	st, err := openStores(context.Background(), &config.Config{StoreDriver: config.StoreMemory}, log)
	if err != nil {
		t.Fatalf("open stores: %v", err)
	}
	defer st.close()

	if len(st.readiness) != 0 {
		t.Fatalf("memory stores have no readiness checks, got %d", len(st.readiness))
	}
	if !strings.Contains(buf.String(), "in-memory stores") {
		t.Fatalf("expected a warning about in-memory stores, got %q", buf.String())
	}

	ctx := context.Background()
	saved, err := st.accounts.Save(ctx, &domain.User{Username: "alice", Password: "secret", Roles: domain.DefaultRoles()})
	if err != nil {
		t.Fatalf("save user: %v", err)
	}
	if got, err := st.accounts.FindByUsername(ctx, "alice"); err != nil || got.ID != saved.ID {
		t.Fatalf("find user: %+v err=%v", got, err)
	}
	if _, err := st.patients.Save(ctx, &domain.Patient{Name: "Bob", Age: 30}); err != nil {
		t.Fatalf("save patient: %v", err)
	}
}
