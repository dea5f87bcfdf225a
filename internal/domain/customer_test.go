package domain

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDiff_DisjointSets(t *testing.T) {
	for _, tc := range []struct{ local, backup int }{{0, 0}, {3, 0}, {0, 4}, {2, 5}} {
		t.Run(fmt.Sprintf("%d_%d", tc.local, tc.backup), func(t *testing.T) {
			var local, backup []Customer
			for i := 0; i < tc.local; i++ {
				local = append(local, Customer{ID: fmt.Sprintf("l%d", i), Name: "x"})
			}
			for i := 0; i < tc.backup; i++ {
				backup = append(backup, Customer{ID: fmt.Sprintf("b%d", i), Name: "x"})
			}
			d := Diff(local, backup)
			assert.Equal(t, Differences{LocalOnly: tc.local, BackupOnly: tc.backup}, d)
		})
	}
}

func TestDiff_Conflicts(t *testing.T) {
	local := []Customer{{ID: "1", Name: "Ana"}}

	assert.Equal(t, Differences{Conflicts: 1}, Diff(local, []Customer{{ID: "1", Name: "Ana B"}}))
	assert.Equal(t, Differences{}, Diff(local, []Customer{{ID: "1", Name: "Ana"}}))
	// sin normalización de mayúsculas
	assert.Equal(t, Differences{Conflicts: 1}, Diff(local, []Customer{{ID: "1", Name: "ana"}}))
}

func TestDiff_IgnoresRecordsWithoutID(t *testing.T) {
	local := []Customer{{Name: "sin id"}, {ID: "1", Name: "Ana"}}
	backup := []Customer{{Name: "sin id"}, {ID: "2", Name: "Bia"}}

	d := Diff(local, backup)
	assert.Equal(t, Differences{LocalOnly: 1, BackupOnly: 1}, d)
}

func TestDiff_Mixed(t *testing.T) {
	local := []Customer{{ID: "1", Name: "Ana"}, {ID: "2", Name: "Bia"}, {ID: "3", Name: "Caio"}}
	backup := []Customer{{ID: "2", Name: "Bia"}, {ID: "3", Name: "Caio S"}, {ID: "4", Name: "Duda"}}

	assert.Equal(t, Differences{LocalOnly: 1, BackupOnly: 1, Conflicts: 1}, Diff(local, backup))
}

func TestDiff_IgnoresBackupID(t *testing.T) {
	local := []Customer{{ID: "1", BackupID: "m5", Name: "Ana"}}
	// el id del backup coincide con la clave local pero es otro cliente
	backup := []Customer{{ID: "7", BackupID: "1", Name: "Gil"}, {ID: "1", BackupID: "m9", Name: "Ana"}}

	assert.Equal(t, Differences{BackupOnly: 1}, Diff(local, backup))
}

func TestCustomerPatch_Apply(t *testing.T) {
	name := "Ana Maria"
	c := Customer{ID: "1", Name: "Ana", Email: "ana@mail.com"}

	got := CustomerPatch{Name: &name, Address: &Address{CEP: "01001000"}}.Apply(c)
	assert.Equal(t, "Ana Maria", got.Name)
	assert.Equal(t, "ana@mail.com", got.Email)
	assert.Equal(t, "01001000", got.Address.CEP)
	assert.Equal(t, "Ana", c.Name)
}

func TestPaymentMethod_Valid(t *testing.T) {
	assert.True(t, PaymentPix.Valid())
	assert.True(t, PaymentCash.Valid())
	assert.False(t, PaymentMethod("boleto").Valid())
}
