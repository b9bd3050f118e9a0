package validate_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jobblox/crm-api/pkg/validate"
)

func TestStruct_LoginValido(t *testing.T) {
	errs := validate.Struct(validate.LoginForm{
		Email:    "test@example.com",
		Password: "password123",
	})
	assert.Nil(t, errs, "un login válido no debe producir errores")
}

func TestStruct_LoginInvalido(t *testing.T) {
	errs := validate.Struct(validate.LoginForm{
		Email:    "invalid-email",
		Password: "",
	})
	require.NotNil(t, errs)
	assert.Contains(t, errs["email"], "valid email")
	assert.Contains(t, errs["password"], "required")
}

func TestStruct_RegisterPasswordsNoCoinciden(t *testing.T) {
	errs := validate.Struct(validate.RegisterForm{
		FirstName:       "Demo",
		LastName:        "User",
		Email:           "demo@jobblox.com",
		Password:        "Password123",
		ConfirmPassword: "Password456",
		TenantName:      "Acme Plumbing",
	})
	require.NotNil(t, errs)
	assert.Equal(t, "Passwords don't match", errs["confirmPassword"])
}

func TestStruct_RegisterPasswordDebil(t *testing.T) {
	errs := validate.Struct(validate.RegisterForm{
		FirstName:       "Demo",
		LastName:        "User",
		Email:           "demo@jobblox.com",
		Password:        "abc",
		ConfirmPassword: "abc",
		TenantName:      "Acme Plumbing",
	})
	require.NotNil(t, errs)
	assert.Contains(t, errs["password"], "at least 8 characters")
}

func TestStruct_CustomerTipoInvalido(t *testing.T) {
	errs := validate.Struct(validate.CustomerForm{
		Name: "John Doe",
		Type: "gubernamental",
	})
	require.NotNil(t, errs)
	assert.Contains(t, errs["type"], "must be one of")
}

func TestStruct_CustomerEmailOpcional(t *testing.T) {
	// Email y phone vacíos son válidos (omitempty).
	errs := validate.Struct(validate.CustomerForm{
		Name: "John Doe",
		Type: "residential",
	})
	assert.Nil(t, errs)
}

func TestStruct_InvoiceSinItems(t *testing.T) {
	errs := validate.Struct(validate.InvoiceForm{
		CustomerID: "c-1",
		Items:      []validate.LineItemForm{},
	})
	require.NotNil(t, errs)
	assert.Contains(t, errs["items"], "At least 1 item")
}

func TestStruct_InvoiceItemCantidadCero(t *testing.T) {
	errs := validate.Struct(validate.InvoiceForm{
		CustomerID: "c-1",
		Items: []validate.LineItemForm{
			{Description: "Labor", Quantity: 0, UnitPrice: 50},
		},
	})
	require.NotNil(t, errs)
	// El error del item anidado se reporta con notación de índice.
	found := false
	for k := range errs {
		if k == "items[0].quantity" {
			found = true
		}
	}
	assert.True(t, found, "debe reportar la cantidad inválida del item 0: %v", errs)
}
