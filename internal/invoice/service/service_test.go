package service

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/smallbiznis/hynox/internal/clock"
	"github.com/smallbiznis/hynox/internal/config"
	invoicedomain "github.com/smallbiznis/hynox/internal/invoice/domain"
	invoicerepo "github.com/smallbiznis/hynox/internal/invoice/repository"
	"github.com/smallbiznis/hynox/pkg/db"
	"github.com/smallbiznis/hynox/pkg/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

type testEnv struct {
	svc   invoicedomain.Service
	clock *clock.FakeClock
	logs  *observer.ObservedLogs
}

func newTestEnv(t *testing.T) testEnv {
	t.Helper()

	conn, err := db.NewTest()
	require.NoError(t, err)
	require.NoError(t, conn.AutoMigrate(&invoicedomain.Invoice{}))

	node, err := snowflake.NewNode(1)
	require.NoError(t, err)

	core, logs := observer.New(zap.InfoLevel)
	clk := clock.NewFakeClock(time.Date(2025, 5, 10, 8, 0, 0, 0, time.UTC))

	svc := NewService(ServiceParam{
		DB:       conn,
		Log:      zap.New(core),
		GenID:    node,
		Clock:    clk,
		Cfg:      config.Config{},
		Repo:     invoicerepo.Provide(),
		Defaults: config.NewStaticDefaultsHolder(config.BuiltinDefaults()),
	})
	return testEnv{svc: svc, clock: clk, logs: logs}
}

func decodeCreate(t *testing.T, payload string) invoicedomain.CreateInvoiceRequest {
	t.Helper()
	var req invoicedomain.CreateInvoiceRequest
	require.NoError(t, json.Unmarshal([]byte(payload), &req))
	return req
}

func TestCreateInvoiceComputesFiguresAndDefaults(t *testing.T) {
	env := newTestEnv(t)

	req := decodeCreate(t, `{
		"issueDate":"2025-05-10",
		"to":{"name":"Acme Traders"},
		"items":[{"id":"1","description":"Printing","quantity":2,"unitPrice":"100"}],
		"taxRate":18,
		"discount":10
	}`)
	invoice, err := env.svc.Create(context.Background(), req)
	require.NoError(t, err)

	assert.Equal(t, invoicedomain.InvoiceStatusPending, invoice.Status)
	assert.Equal(t, "INV-2025-001", invoice.Number)
	assert.Equal(t, "INR", invoice.Currency)
	assert.Equal(t, 200.0, invoice.Subtotal)
	assert.Equal(t, 36.0, invoice.Tax)
	assert.Equal(t, 226.0, invoice.Total)
	assert.Equal(t, "Acme Traders", invoice.To.Data().Name)
	assert.Zero(t, env.logs.FilterMessage("totals_mismatch").Len())
}

func TestCreateInvoiceLogsSubmittedTotalsMismatch(t *testing.T) {
	env := newTestEnv(t)

	req := decodeCreate(t, `{
		"items":[{"id":"1","quantity":1,"unitPrice":50}],
		"cgstRate":9,"sgstRate":9,
		"subtotal":50,"tax":9,"total":59
	}`)
	invoice, err := env.svc.Create(context.Background(), req)
	require.NoError(t, err)

	assert.Equal(t, 59.0, invoice.Total)
	assert.Zero(t, env.logs.FilterMessage("totals_mismatch").Len())

	req = decodeCreate(t, `{"items":[{"id":"1","quantity":1,"unitPrice":50}],"total":1000}`)
	invoice, err = env.svc.Create(context.Background(), req)
	require.NoError(t, err)

	assert.Equal(t, 50.0, invoice.Total)
	assert.Equal(t, 1, env.logs.FilterMessage("totals_mismatch").Len())
}

func TestInvoiceNumbersIncrementPerYear(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	first, err := env.svc.Create(ctx, decodeCreate(t, `{"issueDate":"2025-01-03"}`))
	require.NoError(t, err)
	second, err := env.svc.Create(ctx, decodeCreate(t, `{"issueDate":"2025-11-30"}`))
	require.NoError(t, err)

	_, err = env.svc.Delete(ctx, invoicedomain.DeleteInvoiceRequest{ID: second.ID.String()})
	require.NoError(t, err)

	third, err := env.svc.Create(ctx, decodeCreate(t, `{"issueDate":"2025-12-01"}`))
	require.NoError(t, err)
	nextYear, err := env.svc.Create(ctx, decodeCreate(t, `{"issueDate":"2026-01-01"}`))
	require.NoError(t, err)
	custom, err := env.svc.Create(ctx, decodeCreate(t, `{"number":"CUSTOM-9"}`))
	require.NoError(t, err)

	assert.Equal(t, "INV-2025-001", first.Number)
	assert.Equal(t, "INV-2025-002", second.Number)
	assert.Equal(t, "INV-2025-003", third.Number)
	assert.Equal(t, "INV-2026-001", nextYear.Number)
	assert.Equal(t, "CUSTOM-9", custom.Number)
}

func TestInvoiceNumberNotReusedAfterHardDelete(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	first, err := env.svc.Create(ctx, invoicedomain.CreateInvoiceRequest{})
	require.NoError(t, err)
	second, err := env.svc.Create(ctx, invoicedomain.CreateInvoiceRequest{})
	require.NoError(t, err)

	outcome, err := env.svc.Delete(ctx, invoicedomain.DeleteInvoiceRequest{ID: first.ID.String(), Hard: true})
	require.NoError(t, err)
	require.Equal(t, repository.HardDeleted, outcome)

	third, err := env.svc.Create(ctx, invoicedomain.CreateInvoiceRequest{})
	require.NoError(t, err)

	assert.Equal(t, "INV-2025-002", second.Number)
	assert.Equal(t, "INV-2025-003", third.Number)
}

func TestUpdateWithOnlyStatusChangesOnlyStatus(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	created, err := env.svc.Create(ctx, decodeCreate(t, `{
		"notes":"Thanks for your business",
		"items":[{"id":"1","quantity":3,"unitPrice":10}],
		"taxRate":5
	}`))
	require.NoError(t, err)

	var req invoicedomain.UpdateInvoiceRequest
	require.NoError(t, json.Unmarshal([]byte(`{"status":"Paid"}`), &req))
	req.ID = created.ID.String()

	env.clock.Advance(time.Minute)
	updated, err := env.svc.Update(ctx, req)
	require.NoError(t, err)

	assert.Equal(t, invoicedomain.InvoiceStatusPaid, updated.Status)
	assert.Equal(t, created.Number, updated.Number)
	assert.Equal(t, created.Notes, updated.Notes)
	assert.Equal(t, created.Total, updated.Total)
	require.Len(t, updated.Items, 1)
	assert.Equal(t, 30.0, updated.Items[0].Amount())
}

func TestUpdateRecomputesWhenItemsChange(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	created, err := env.svc.Create(ctx, decodeCreate(t, `{"items":[{"id":"1","quantity":1,"unitPrice":100}],"taxRate":10}`))
	require.NoError(t, err)
	require.Equal(t, 110.0, created.Total)

	var req invoicedomain.UpdateInvoiceRequest
	require.NoError(t, json.Unmarshal([]byte(`{"items":[{"id":"1","quantity":2,"unitPrice":100}]}`), &req))
	req.ID = created.ID.String()

	updated, err := env.svc.Update(ctx, req)
	require.NoError(t, err)
	assert.Equal(t, 200.0, updated.Subtotal)
	assert.Equal(t, 20.0, updated.Tax)
	assert.Equal(t, 220.0, updated.Total)
}

func TestUpdateStatusRejectsUnknownStatus(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	created, err := env.svc.Create(ctx, decodeCreate(t, `{}`))
	require.NoError(t, err)

	_, err = env.svc.UpdateStatus(ctx, invoicedomain.UpdateStatusRequest{ID: created.ID.String(), Status: "Archived"})
	assert.ErrorIs(t, err, invoicedomain.ErrInvalidStatus)

	updated, err := env.svc.UpdateStatus(ctx, invoicedomain.UpdateStatusRequest{ID: created.ID.String(), Status: "sent"})
	require.NoError(t, err)
	assert.Equal(t, invoicedomain.InvoiceStatusSent, updated.Status)
}

func TestInvoiceDeleteLifecycle(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	created, err := env.svc.Create(ctx, decodeCreate(t, `{}`))
	require.NoError(t, err)

	outcome, err := env.svc.Delete(ctx, invoicedomain.DeleteInvoiceRequest{ID: created.ID.String()})
	require.NoError(t, err)
	assert.Equal(t, repository.SoftDeleted, outcome)

	list, err := env.svc.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, list)

	fetched, err := env.svc.GetByID(ctx, created.ID.String())
	require.NoError(t, err)
	assert.NotNil(t, fetched.DeletedAt)

	outcome, err = env.svc.Delete(ctx, invoicedomain.DeleteInvoiceRequest{ID: created.ID.String(), Hard: true})
	require.NoError(t, err)
	assert.Equal(t, repository.HardDeleted, outcome)

	_, err = env.svc.GetByID(ctx, created.ID.String())
	assert.ErrorIs(t, err, invoicedomain.ErrInvoiceNotFound)

	_, err = env.svc.GetByID(ctx, "not-an-id")
	assert.ErrorIs(t, err, invoicedomain.ErrInvalidInvoiceID)
}
