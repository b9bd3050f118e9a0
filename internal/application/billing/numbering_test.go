package billing_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jobblox/crm-api/internal/application/billing"
	"github.com/jobblox/crm-api/internal/application/dto"
	"github.com/jobblox/crm-api/internal/domain/entity"
	"github.com/jobblox/crm-api/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// Asignación de consecutivos EST-/INV-. El número debe asignarse dentro de la
// misma transacción que inserta el documento: fuera de ella, dos Creates
// concurrentes leerían el mismo MAX y duplicarían el consecutivo.
// ──────────────────────────────────────────────────────────────────────────────

type fakeCustomerRepo struct {
	byID map[string]*entity.Customer
}

func newFakeCustomerRepo() *fakeCustomerRepo {
	return &fakeCustomerRepo{byID: map[string]*entity.Customer{}}
}

func (r *fakeCustomerRepo) Create(c *entity.Customer) error { r.byID[c.ID] = c; return nil }
func (r *fakeCustomerRepo) GetByID(id string) (*entity.Customer, error) {
	return r.byID[id], nil
}
func (r *fakeCustomerRepo) GetByTenantAndEmail(tenantID, email string) (*entity.Customer, error) {
	for _, c := range r.byID {
		if c.TenantID == tenantID && c.Email == email {
			return c, nil
		}
	}
	return nil, nil
}
func (r *fakeCustomerRepo) ListByTenant(tenantID string, _ repository.CustomerFilter, _, _ int) ([]*entity.Customer, int, error) {
	var out []*entity.Customer
	for _, c := range r.byID {
		if c.TenantID == tenantID {
			out = append(out, c)
		}
	}
	return out, len(out), nil
}
func (r *fakeCustomerRepo) Update(c *entity.Customer) error { r.byID[c.ID] = c; return nil }
func (r *fakeCustomerRepo) Delete(id string) error          { delete(r.byID, id); return nil }

func seedCustomer(t *testing.T, repo *fakeCustomerRepo, tenantID string) *entity.Customer {
	t.Helper()
	customer := &entity.Customer{
		ID:       uuid.New().String(),
		TenantID: tenantID,
		Name:     "Rivera Electric",
		Email:    "billing@riveraelectric.test",
	}
	require.NoError(t, repo.Create(customer))
	return customer
}

func lineItems() []dto.LineItemRequest {
	return []dto.LineItemRequest{{
		Description: "Service call",
		Quantity:    decimal.NewFromInt(1),
		UnitPrice:   decimal.NewFromInt(120),
		Taxable:     true,
	}}
}

// Caso 1: El consecutivo de la cotización se asigna dentro de la transacción
// que la inserta, y Creates sucesivos obtienen números consecutivos distintos.
func TestEstimateCreate_NumeroDentroDeLaTransaccion(t *testing.T) {
	fx := newBillingFixture(t)
	customers := newFakeCustomerRepo()
	customer := seedCustomer(t, customers, fx.tenantID)

	tx := &fakeTxRunner{estimates: fx.estimates, invoices: fx.invoices, payments: fx.payments}
	var numberedInTx []bool
	fx.estimates.onNextNumber = func() { numberedInTx = append(numberedInTx, tx.inTx) }

	uc := billing.NewEstimateUseCase(fx.estimates, fx.invoices, customers, tx, nil)
	req := dto.CreateEstimateRequest{CustomerID: customer.ID, Title: "Panel swap", Items: lineItems()}

	first, err := uc.Create(context.Background(), fx.tenantID, req)
	require.NoError(t, err)
	second, err := uc.Create(context.Background(), fx.tenantID, req)
	require.NoError(t, err)

	year := time.Now().Year()
	assert.Equal(t, fmt.Sprintf("EST-%d-0001", year), first.Number)
	assert.Equal(t, fmt.Sprintf("EST-%d-0002", year), second.Number)
	assert.NotEqual(t, first.Number, second.Number)

	require.Len(t, numberedInTx, 2)
	for i, inTx := range numberedInTx {
		assert.True(t, inTx, "el consecutivo %d se pidió fuera de la transacción", i+1)
	}
}

// Caso 2: Igual para facturas creadas directamente (sin pasar por cotización).
func TestInvoiceCreate_NumeroDentroDeLaTransaccion(t *testing.T) {
	fx := newBillingFixture(t)
	customers := newFakeCustomerRepo()
	customer := seedCustomer(t, customers, fx.tenantID)

	tx := &fakeTxRunner{estimates: fx.estimates, invoices: fx.invoices, payments: fx.payments}
	var numberedInTx []bool
	fx.invoices.onNextNumber = func() { numberedInTx = append(numberedInTx, tx.inTx) }

	uc := billing.NewInvoiceUseCase(fx.invoices, customers, nil, tx, nil, nil)
	req := dto.CreateInvoiceRequest{CustomerID: customer.ID, Title: "Service call", Items: lineItems()}

	first, err := uc.Create(context.Background(), fx.tenantID, req)
	require.NoError(t, err)
	second, err := uc.Create(context.Background(), fx.tenantID, req)
	require.NoError(t, err)

	year := time.Now().Year()
	// La factura sembrada por el fixture no pasa por NextNumber, así que la
	// secuencia del fake arranca en 0001.
	assert.Equal(t, fmt.Sprintf("INV-%d-0001", year), first.Number)
	assert.Equal(t, fmt.Sprintf("INV-%d-0002", year), second.Number)

	require.Len(t, numberedInTx, 2)
	for i, inTx := range numberedInTx {
		assert.True(t, inTx, "el consecutivo %d se pidió fuera de la transacción", i+1)
	}
}
