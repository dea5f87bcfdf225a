package xlsx

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"github.com/phenrril/lojamobile/internal/domain"
)

const SheetName = "Clientes"

var header = []any{"ID", "Nome", "CPF", "Email", "Telefone", "Número", "Complemento", "CEP", "Logradouro", "Bairro", "Cidade", "UF", "Cadastro", "Pendente"}

// WriteCustomers escribe la planilla de clientes en w.
func WriteCustomers(w io.Writer, customers []domain.Customer) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", SheetName); err != nil {
		return err
	}
	if err := f.SetSheetRow(SheetName, "A1", &header); err != nil {
		return err
	}
	for i, c := range customers {
		var a domain.Address
		if c.Address != nil {
			a = *c.Address
		}
		pending := "não"
		if c.Pending {
			pending = "sim"
		}
		row := []any{c.ID, c.Name, c.CPF, c.Email, c.Phone, c.Number, c.Complement, a.CEP, a.Street, a.Neighborhood, a.City, a.State, c.CreatedAt, pending}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(SheetName, cell, &row); err != nil {
			return fmt.Errorf("fila %d: %w", i+2, err)
		}
	}
	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("escribir xlsx: %w", err)
	}
	return nil
}
