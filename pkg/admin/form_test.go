package admin

import (
	"fmt"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type color string

func (c color) Valid() bool { return c == "red" || c == "blue" }

type part struct {
	Name string
	Qty  int
}

type parts []part

func (p *parts) ParseFormValue(text string) error {
	out := parts{}
	for _, entry := range strings.Split(text, ";") {
		var pt part
		if _, err := fmt.Sscanf(strings.TrimSpace(entry), "%s %d", &pt.Name, &pt.Qty); err != nil {
			return err
		}
		out = append(out, pt)
	}
	*p = out
	return nil
}

type widgetForm struct {
	Parts    parts            `json:"pieces"`
	Name     string           `json:"nom" validate:"required"`
	Price    decimal.Decimal  `json:"prix" validate:"gte=0"`
	Stock    int64            `json:"quantiteStock" validate:"min=0"`
	Sizes    []string         `json:"tailles"`
	ParentID *int64           `json:"parentId,omitempty"`
	Discount *decimal.Decimal `json:"remise" validate:"required,gte=0"`
	Color    color            `json:"couleur" validate:"omitempty,enum"`
	Password string           `json:"password,omitempty"`
}

func TestDecodeForm(t *testing.T) {
	parent := int64(9)
	form := widgetForm{Name: "keep", Stock: 1, ParentID: &parent}

	err := DecodeForm(map[string]string{
		"prix":          "45.50",
		"quantiteStock": "12",
		"tailles":       " S, M ,, L ",
		"couleur":       "red",
	}, &form)
	require.NoError(t, err)

	assert.Equal(t, "keep", form.Name)
	assert.True(t, decimal.RequireFromString("45.5").Equal(form.Price))
	assert.Equal(t, int64(12), form.Stock)
	assert.Equal(t, []string{"S", "M", "L"}, form.Sizes)
	assert.Equal(t, color("red"), form.Color)
	require.NotNil(t, form.ParentID)
	assert.Equal(t, int64(9), *form.ParentID)
}

func TestDecodeFormReplacesLists(t *testing.T) {
	form := widgetForm{
		Sizes: []string{"S", "M", "L", "XL"},
		Parts: parts{{"bolt", 4}, {"nut", 4}},
	}
	require.NoError(t, DecodeForm(map[string]string{"tailles": "S", "pieces": "screw 2"}, &form))
	assert.Equal(t, []string{"S"}, form.Sizes)
	assert.Equal(t, parts{{"screw", 2}}, form.Parts)

	assert.ErrorIs(t, DecodeForm(map[string]string{"pieces": "screw"}, &form), ErrInvalidForm)
}

func TestDecodeFormOptionalPointer(t *testing.T) {
	var form widgetForm
	require.NoError(t, DecodeForm(map[string]string{"parentId": "3"}, &form))
	require.NotNil(t, form.ParentID)
	assert.Equal(t, int64(3), *form.ParentID)

	require.NoError(t, DecodeForm(map[string]string{"parentId": ""}, &form))
	assert.Nil(t, form.ParentID)
}

func TestDecodeFormPointerDecimal(t *testing.T) {
	var form widgetForm
	require.NoError(t, DecodeForm(map[string]string{"remise": "0"}, &form))
	require.NotNil(t, form.Discount)
	assert.True(t, form.Discount.IsZero())

	require.NoError(t, DecodeForm(map[string]string{"remise": "12.5"}, &form))
	assert.True(t, decimal.RequireFromString("12.5").Equal(*form.Discount))

	require.NoError(t, DecodeForm(map[string]string{"remise": ""}, &form))
	assert.Nil(t, form.Discount)
}

func TestDecodeFormErrors(t *testing.T) {
	var form widgetForm
	assert.ErrorIs(t, DecodeForm(map[string]string{"unknown": "x"}, &form), ErrInvalidForm)
	assert.ErrorIs(t, DecodeForm(map[string]string{"quantiteStock": "many"}, &form), ErrInvalidForm)
	assert.ErrorIs(t, DecodeForm(map[string]string{"prix": "cheap"}, &form), ErrInvalidForm)
}

func TestValidateForm(t *testing.T) {
	zero := decimal.Zero
	valid := widgetForm{Name: "Widget", Price: decimal.NewFromInt(3), Color: "blue", Discount: &zero}
	assert.NoError(t, ValidateForm(valid))

	missing := valid
	missing.Name = ""
	assert.ErrorIs(t, ValidateForm(missing), ErrInvalidForm)

	negative := valid
	negative.Price = decimal.NewFromInt(-1)
	assert.ErrorIs(t, ValidateForm(negative), ErrInvalidForm)

	noDiscount := valid
	noDiscount.Discount = nil
	assert.ErrorIs(t, ValidateForm(noDiscount), ErrInvalidForm)

	minus := decimal.NewFromInt(-2)
	negativeDiscount := valid
	negativeDiscount.Discount = &minus
	assert.ErrorIs(t, ValidateForm(negativeDiscount), ErrInvalidForm)

	badEnum := valid
	badEnum.Color = "green"
	assert.ErrorIs(t, ValidateForm(badEnum), ErrInvalidForm)

	noEnum := valid
	noEnum.Color = ""
	assert.NoError(t, ValidateForm(noEnum))
}

func TestSplitList(t *testing.T) {
	assert.Equal(t, []string{"Noir", "Blanc"}, SplitList("Noir, Blanc"))
	assert.Equal(t, []string{}, SplitList(""))
	assert.Equal(t, []string{}, SplitList(" , "))
}
