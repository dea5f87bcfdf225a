package domain

import (
	"context"
	"time"
)

// Customer es el registro de cliente tal como viaja entre el store local,
// la fuente primaria y el backup. Los tags json siguen el formato del backup.
//
// ID es la clave local (clienteId) y es la que se compara entre conjuntos.
// BackupID es el id que asigna el backup; solo se usa como path del PUT.
type Customer struct {
	ID         string   `json:"clienteId,omitempty"`
	BackupID   string   `json:"id,omitempty"`
	Name       string   `json:"nome" validate:"required"`
	CPF        string   `json:"cpf" validate:"required,len=11,number"`
	Email      string   `json:"email" validate:"required,email"`
	Phone      string   `json:"telefone" validate:"required,len=11,number"`
	Number     string   `json:"numero" validate:"required"`
	Complement string   `json:"complemento,omitempty"`
	Address    *Address `json:"endereco,omitempty"`
	CreatedAt  string   `json:"dataCadastro,omitempty"`
	Pending    bool     `json:"pendente,omitempty"`
}

// CustomerPatch carries the fields of a partial update. Nil fields are kept.
type CustomerPatch struct {
	Name       *string  `json:"nome,omitempty"`
	CPF        *string  `json:"cpf,omitempty"`
	Email      *string  `json:"email,omitempty"`
	Phone      *string  `json:"telefone,omitempty"`
	Number     *string  `json:"numero,omitempty"`
	Complement *string  `json:"complemento,omitempty"`
	Address    *Address `json:"endereco,omitempty"`
}

// Apply merges the patch into c.
func (p CustomerPatch) Apply(c Customer) Customer {
	if p.Name != nil {
		c.Name = *p.Name
	}
	if p.CPF != nil {
		c.CPF = *p.CPF
	}
	if p.Email != nil {
		c.Email = *p.Email
	}
	if p.Phone != nil {
		c.Phone = *p.Phone
	}
	if p.Number != nil {
		c.Number = *p.Number
	}
	if p.Complement != nil {
		c.Complement = *p.Complement
	}
	if p.Address != nil {
		a := *p.Address
		c.Address = &a
	}
	return c
}

// Address es la respuesta de la consulta de CEP.
type Address struct {
	CEP          string `json:"cep"`
	Street       string `json:"logradouro"`
	Complement   string `json:"complemento,omitempty"`
	Neighborhood string `json:"bairro"`
	City         string `json:"localidade"`
	State        string `json:"uf"`
}

type SyncStatus string

const (
	SyncIdle    SyncStatus = "idle"
	SyncLoading SyncStatus = "loading"
	SyncSuccess SyncStatus = "success"
	SyncError   SyncStatus = "error"
)

// Differences counts how the local and backup sets diverge, keyed by clienteId.
type Differences struct {
	LocalOnly  int `json:"localOnly"`
	BackupOnly int `json:"backupOnly"`
	Conflicts  int `json:"conflicts"`
}

// Diff compares both sets by clienteId, never by the id the backup assigns.
// Records without a clienteId are ignored and a conflict is a shared
// clienteId whose Name differs (exact comparison).
func Diff(local, backup []Customer) Differences {
	localIDs := make(map[string]struct{}, len(local))
	for _, c := range local {
		if c.ID != "" {
			localIDs[c.ID] = struct{}{}
		}
	}
	backupByID := make(map[string]Customer, len(backup))
	for _, b := range backup {
		if b.ID == "" {
			continue
		}
		// primer match gana, igual que una búsqueda lineal
		if _, ok := backupByID[b.ID]; !ok {
			backupByID[b.ID] = b
		}
	}

	var d Differences
	for _, c := range local {
		if c.ID == "" {
			continue
		}
		b, ok := backupByID[c.ID]
		if !ok {
			d.LocalOnly++
			continue
		}
		if b.Name != c.Name {
			d.Conflicts++
		}
	}
	for _, b := range backup {
		if b.ID == "" {
			continue
		}
		if _, ok := localIDs[b.ID]; !ok {
			d.BackupOnly++
		}
	}
	return d
}

// SyncReport summarizes one completed sync run.
type SyncReport struct {
	Processed  int           `json:"processed"`
	Created    int           `json:"created"`
	Updated    int           `json:"updated"`
	Duration   time.Duration `json:"duration"`
	FinishedAt time.Time     `json:"finishedAt"`
}

// CustomerSource is the system of record for customers.
type CustomerSource interface {
	FetchCustomers(ctx context.Context) ([]Customer, error)
}

// BackupMirror is the remote store used for backup and restore. Create
// returns the record with the BackupID the mirror assigned and Update takes
// that BackupID as path.
type BackupMirror interface {
	List(ctx context.Context) ([]Customer, error)
	Create(ctx context.Context, c Customer) (*Customer, error)
	Update(ctx context.Context, backupID string, c Customer) (*Customer, error)
}

type AddressLookup interface {
	Lookup(ctx context.Context, cep string) (*Address, error)
}
