package types

// ActionPackageRow is one row of an action package query. Nil pointers are
// SQL NULLs; they are only coerced to empty strings when building tuples.
type ActionPackageRow struct {
	Name      string
	Version   *string
	Release   *string
	Epoch     *string
	Arch      *string
	Retracted bool
}

// PackageTuple is the fixed-order payload sent to clients:
// name, version, release, epoch, arch.
type PackageTuple [5]string

func NewPackageTuple(name, version, release, epoch, arch string) PackageTuple {
	return PackageTuple{name, version, release, epoch, arch}
}

func (t PackageTuple) Name() string    { return t[0] }
func (t PackageTuple) Version() string { return t[1] }
func (t PackageTuple) Release() string { return t[2] }
func (t PackageTuple) Epoch() string   { return t[3] }
func (t PackageTuple) Arch() string    { return t[4] }

type PackageList []PackageTuple
