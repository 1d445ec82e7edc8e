package types

import "encoding/json"

type TransactionOp string

const (
	TransactionOpInsert  TransactionOp = "insert"
	TransactionOpDelete  TransactionOp = "delete"
	TransactionOpUpgrade TransactionOp = "upgrade"
)

// TransactionRow is one element of a package delta joined with its
// operation label. Version and release are never NULL in the delta tables.
type TransactionRow struct {
	Operation string
	Name      string
	Version   string
	Release   string
	Epoch     *string
	Arch      *string
}

// TransactionElement encodes as [tuple, code] on the wire.
type TransactionElement struct {
	Package PackageTuple
	Code    string
}

func (e TransactionElement) MarshalJSON() ([]byte, error) {
	return json.Marshal([]any{e.Package, e.Code})
}

type TransactionResult struct {
	Packages []TransactionElement `json:"packages"`
}
