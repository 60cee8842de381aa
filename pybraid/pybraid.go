package pybraid

import (
	"os"
	"strings"

	"github.com/2x3systems/gobraid/garside"
	"github.com/2x3systems/gobraid/libbraid"
	"github.com/2x3systems/gobraid/libbraid/catalog"
	"github.com/go-python/gpython/py"
)

var (
	LIB_VERSION = "v1.2024.1"
)

var (
	pyBraidType     = py.NewType("Braid", "a braid held in left canonical form")
	pyCatalogType   = py.NewType("Catalog", "garside.Catalog")
	pyWorkspaceType = py.NewType("Workspace", "collects active session resources and catalogs")
)

type pyBraid struct {
	*libbraid.Braid
}

func (B pyBraid) Type() *py.Type {
	return pyBraidType
}

func (B pyBraid) M__str__() (py.Object, error) {
	return py.String(B.String()), nil
}

func (B pyBraid) M__repr__() (py.Object, error) {
	return B.M__str__()
}

// loadWord reads a word given either as text or as a tuple / list of signed generators.
// In text, D is the Garside element of pres.
func loadWord(pres garside.Presentation, obj py.Object) ([]int, error) {
	var items []py.Object
	switch v := obj.(type) {
	case py.String:
		word, err := libbraid.ParseWord(pres, string(v))
		if err != nil {
			return nil, py.ExceptionNewf(py.ValueError, "%v", err)
		}
		return word, nil
	case py.Tuple:
		items = v
	case *py.List:
		items = v.Items
	default:
		return nil, py.ExceptionNewf(py.TypeError, "expected str, tuple or list word (got %v)", obj.Type().Name)
	}

	word := make([]int, len(items))
	for i, item := range items {
		gi, err := py.GetInt(item)
		if err != nil {
			return nil, err
		}
		word[i] = int(gi)
	}
	return word, nil
}

func pyBool(b bool) py.Object {
	if b {
		return py.True
	}
	return py.False
}

func wordToTuple(word []int) py.Tuple {
	tuple := make(py.Tuple, len(word))
	for i, gi := range word {
		tuple[i] = py.Int(gi)
	}
	return tuple
}

// braidArg reads a braid at args[at], either a Braid object or the triple (n, word[, presentation]).
// It returns the number of args consumed.
func braidArg(args py.Tuple, at int) (*libbraid.Braid, int, error) {
	if len(args) <= at {
		return nil, 0, py.ExceptionNewf(py.TypeError, "missing braid argument")
	}
	if B, ok := args[at].(pyBraid); ok {
		return B.Braid, 1, nil
	}
	if len(args) < at+2 {
		return nil, 0, py.ExceptionNewf(py.TypeError, "expected Braid or (n, word) arguments")
	}

	n, err := py.GetInt(args[at])
	if err != nil {
		return nil, 0, err
	}
	presName := libbraid.PresArtin
	consumed := 2
	if len(args) > at+2 {
		if name, isStr := args[at+2].(py.String); isStr {
			presName = string(name)
			consumed = 3
		}
	}

	pres, err := libbraid.NewPresentation(presName, int(n))
	if err != nil {
		return nil, 0, py.ExceptionNewf(py.ValueError, "%v", err)
	}
	word, err := loadWord(pres, args[at+1])
	if err != nil {
		return nil, 0, err
	}
	B, err := libbraid.FromWord(pres, word)
	if err != nil {
		return nil, 0, py.ExceptionNewf(py.ValueError, "%v", err)
	}
	return B, consumed, nil
}

// Arg 1 (int): n
// Arg 2 (str|tuple|list): word
// Arg 3 (str, optional): "artin" or "band"
func py_NewBraid(module py.Object, args py.Tuple) (py.Object, error) {
	B, _, err := braidArg(args, 0)
	if err != nil {
		return nil, err
	}
	return pyBraid{B}, nil
}

func py_LCF(module py.Object, args py.Tuple) (py.Object, error) {
	B, _, err := braidArg(args, 0)
	if err != nil {
		return nil, err
	}
	return py.String(B.String()), nil
}

func py_RCF(module py.Object, args py.Tuple) (py.Object, error) {
	B, _, err := braidArg(args, 0)
	if err != nil {
		return nil, err
	}
	return py.String(B.RCF().String()), nil
}

// Returns (True, conjugator word) or (False, None)
func py_AreConjugate(module py.Object, args py.Tuple) (py.Object, error) {
	B1, consumed, err := braidArg(args, 0)
	if err != nil {
		return nil, err
	}
	B2, _, err := braidArg(args, consumed)
	if err != nil {
		return nil, err
	}
	if B1.Index() != B2.Index() || B1.Pres.Name() != B2.Pres.Name() {
		return nil, py.ExceptionNewf(py.ValueError, "%v", garside.ErrIndexMismatch)
	}

	ok, C := libbraid.AreConjugate(B1, B2)
	if !ok {
		return py.Tuple{py.False, py.None}, nil
	}
	return py.Tuple{py.True, wordToTuple(C.Word())}, nil
}

func py_ThurstonType(module py.Object, args py.Tuple) (py.Object, error) {
	B, _, err := braidArg(args, 0)
	if err != nil {
		return nil, err
	}
	return py.String(libbraid.ThurstonType(B).String()), nil
}

func py_Centralizer(module py.Object, args py.Tuple) (py.Object, error) {
	B, _, err := braidArg(args, 0)
	if err != nil {
		return nil, err
	}
	gens := libbraid.Centralizer(B)
	tuple := make(py.Tuple, len(gens))
	for i, G := range gens {
		tuple[i] = wordToTuple(G.Word())
	}
	return tuple, nil
}

func py_USSSize(module py.Object, args py.Tuple) (py.Object, error) {
	B, _, err := braidArg(args, 0)
	if err != nil {
		return nil, err
	}
	return py.Int(libbraid.USS(B).Size()), nil
}

func py_Rigidity(module py.Object, args py.Tuple) (py.Object, error) {
	B, _, err := braidArg(args, 0)
	if err != nil {
		return nil, err
	}
	return py.Int(libbraid.Rigidity(B)), nil
}

func py_Braid_Word(self py.Object, args py.Tuple) (py.Object, error) {
	B := self.(pyBraid)
	return wordToTuple(B.Word()), nil
}

func py_Braid_Inf(self py.Object, args py.Tuple) (py.Object, error) {
	B := self.(pyBraid)
	return py.Int(B.Inf()), nil
}

func py_Braid_CL(self py.Object, args py.Tuple) (py.Object, error) {
	B := self.(pyBraid)
	return py.Int(B.CL()), nil
}

func py_Braid_Mul(self py.Object, args py.Tuple) (py.Object, error) {
	B := self.(pyBraid)
	C, _, err := braidArg(args, 0)
	if err != nil {
		return nil, err
	}
	if B.Index() != C.Index() || B.Pres.Name() != C.Pres.Name() {
		return nil, py.ExceptionNewf(py.ValueError, "%v", garside.ErrIndexMismatch)
	}
	return pyBraid{libbraid.Mul(B.Braid, C).LCF()}, nil
}

func py_Braid_Inverse(self py.Object, args py.Tuple) (py.Object, error) {
	B := self.(pyBraid)
	return pyBraid{B.Inverse().LCF()}, nil
}

// See Print docs: an optional label prefixes the output and word=True appends the full word
func py_Braid_Print(self py.Object, args py.Tuple, kwargs py.StringDict) (py.Object, error) {
	B := self.(pyBraid)
	opts := garside.DefaultPrintOpts

	py.LoadTuple(args, []interface{}{&opts.Label})
	if opts.Label == "" {
		py.LoadAttr(kwargs, "label", &opts.Label)
	}
	py.LoadAttr(kwargs, "tables", &opts.Tables)
	py.LoadAttr(kwargs, "word", &opts.Word)

	writer := strings.Builder{}
	B.WriteAsString(&writer, opts)
	writer.WriteByte('\n')
	os.Stdout.WriteString(writer.String())
	return py.None, nil
}

const (
	READ_ONLY = 0x01

	kWorkspaceAttr = "_Workspace"
)

type Workspace struct {
	CatalogCtx garside.CatalogContext
}

func (ws *Workspace) Close() {
	ws.CatalogCtx.Close()
	<-ws.CatalogCtx.Done()
}

func (ws *Workspace) Type() *py.Type {
	return pyWorkspaceType
}

func py_GetWorkspace(module py.Object, args py.Tuple) (py.Object, error) {
	wsObj, _ := py.GetAttrString(module, kWorkspaceAttr)
	if wsObj == nil {
		ws := &Workspace{
			CatalogCtx: garside.NewCatalogContext(),
		}
		wsObj = ws
		py.SetAttrString(module, kWorkspaceAttr, wsObj)
	}
	return wsObj, nil
}

func py_Workspace_CatalogExists(self py.Object, args py.Tuple) (py.Object, error) {
	_ = self.(*Workspace)

	var pathname string
	err := py.LoadTuple(args, []interface{}{&pathname})
	if err != nil {
		return nil, err
	}
	_, err = os.Stat(pathname)
	if os.IsNotExist(err) {
		return py.False, nil
	}
	return py.True, nil
}

// Arg 1 (str): db pathname ("" for in-memory)
// Arg 2 (int): flags
// Arg 3 (str): presentation
// Arg 4 (int): max summit size (0 for no limit)
func py_Workspace_OpenCatalog(self py.Object, args py.Tuple) (py.Object, error) {
	ws := self.(*Workspace)

	var pathname, presName string
	var flags, maxSummit int32
	err := py.LoadTuple(args, []interface{}{&pathname, &flags, &presName, &maxSummit})
	if err != nil {
		return nil, err
	}

	if presName == "" {
		presName = libbraid.PresArtin
	}
	opts := garside.CatalogOpts{
		ReadOnly:     (flags & READ_ONLY) != 0,
		DbPathName:   pathname,
		Presentation: presName,
		MaxSummit:    int(maxSummit),
	}

	cat, err := catalog.OpenCatalog(ws.CatalogCtx, opts)
	if err != nil {
		return nil, py.ExceptionNewf(py.RuntimeError, "%v", err)
	}

	return pyCatalog{cat, presName}, nil
}

type pyCatalog struct {
	garside.Catalog
	presName string // presentation words are read in
}

func (cat pyCatalog) Type() *py.Type {
	return pyCatalogType
}

func py_Catalog_Close(self py.Object, args py.Tuple) (py.Object, error) {
	cat := self.(pyCatalog)
	if cat.Catalog != nil {
		cat.Close()
	}
	return py.None, nil
}

func (cat pyCatalog) wordArgs(args py.Tuple) (int, []int, error) {
	if len(args) != 2 {
		return 0, nil, py.ExceptionNewf(py.TypeError, "expected (n, word) arguments")
	}
	n, err := py.GetInt(args[0])
	if err != nil {
		return 0, nil, err
	}
	pres, err := libbraid.NewPresentation(cat.presName, int(n))
	if err != nil {
		return 0, nil, py.ExceptionNewf(py.ValueError, "%v", err)
	}
	word, err := loadWord(pres, args[1])
	return int(n), word, err
}

// Returns (class id, added)
func py_Catalog_TryAddClass(self py.Object, args py.Tuple) (py.Object, error) {
	cat := self.(pyCatalog)
	n, word, err := cat.wordArgs(args)
	if err != nil {
		return nil, err
	}
	if cat.IsReadOnly() {
		return nil, py.ExceptionNewf(py.PermissionError, "%v", garside.ErrReadOnly)
	}

	rec, added, err := cat.TryAddClass(n, word)
	if err != nil {
		return nil, py.ExceptionNewf(py.RuntimeError, "%v", err)
	}
	return py.Tuple{py.String(rec.ClassID().String()), pyBool(added)}, nil
}

// Returns the class id or None
func py_Catalog_LookupClass(self py.Object, args py.Tuple) (py.Object, error) {
	cat := self.(pyCatalog)
	n, word, err := cat.wordArgs(args)
	if err != nil {
		return nil, err
	}

	rec, err := cat.LookupClass(n, word)
	if err == garside.ErrClassNotFound {
		return py.None, nil
	}
	if err != nil {
		return nil, py.ExceptionNewf(py.RuntimeError, "%v", err)
	}
	return py.String(rec.ClassID().String()), nil
}

func py_Catalog_NumClasses(self py.Object, args py.Tuple) (py.Object, error) {
	cat := self.(pyCatalog)

	if len(args) != 1 {
		return nil, py.ExceptionNewf(py.TypeError, "NumClasses() takes exactly one argument (%d given)", len(args))
	}
	var n int32
	err := py.LoadTuple(args, []interface{}{&n})
	if err != nil {
		return nil, err
	}
	return py.Int(cat.NumClasses(int(n))), nil
}

func init() {

	/////////////////////////////////
	// Braid
	{
		pyBraidType.Dict["Word"] = py.MustNewMethod("Word", py_Braid_Word, 0, "returns the signed Artin word of this braid")
		pyBraidType.Dict["Inf"] = py.MustNewMethod("Inf", py_Braid_Inf, 0, "")
		pyBraidType.Dict["CL"] = py.MustNewMethod("CL", py_Braid_CL, 0, "canonical length")
		pyBraidType.Dict["Mul"] = py.MustNewMethod("Mul", py_Braid_Mul, 0, "")
		pyBraidType.Dict["Inverse"] = py.MustNewMethod("Inverse", py_Braid_Inverse, 0, "")
		pyBraidType.Dict["Print"] = py.MustNewMethod("Print", py_Braid_Print, 0, "prints the left canonical form")
	}

	/////////////////////////////////
	// Catalog
	{
		pyCatalogType.Dict["TryAddClass"] = py.MustNewMethod("TryAddClass", py_Catalog_TryAddClass, 0, "")
		pyCatalogType.Dict["LookupClass"] = py.MustNewMethod("LookupClass", py_Catalog_LookupClass, 0, "")
		pyCatalogType.Dict["NumClasses"] = py.MustNewMethod("NumClasses", py_Catalog_NumClasses, 0, "")
		pyCatalogType.Dict["Close"] = py.MustNewMethod("Close", py_Catalog_Close, 0, "")
	}

	/////////////////////////////////
	// Workspace
	{
		pyWorkspaceType.Dict["OpenCatalog"] = py.MustNewMethod("OpenCatalog", py_Workspace_OpenCatalog, 0, "")
		pyWorkspaceType.Dict["CatalogExists"] = py.MustNewMethod("CatalogExists", py_Workspace_CatalogExists, 0, "")
	}

	{
		methods := []*py.Method{
			py.MustNewMethod("Braid", py_NewBraid, 0, ""),
			py.MustNewMethod("LCF", py_LCF, 0, "left canonical form as text"),
			py.MustNewMethod("RCF", py_RCF, 0, "right canonical form as text"),
			py.MustNewMethod("AreConjugate", py_AreConjugate, 0, ""),
			py.MustNewMethod("ThurstonType", py_ThurstonType, 0, ""),
			py.MustNewMethod("Centralizer", py_Centralizer, 0, ""),
			py.MustNewMethod("USSSize", py_USSSize, 0, ""),
			py.MustNewMethod("Rigidity", py_Rigidity, 0, ""),
			py.MustNewMethod("GetWorkspace", py_GetWorkspace, 0, ""),
		}

		globals := py.StringDict{
			"LIB_VERSION": py.String(LIB_VERSION),
			"MAX_INDEX":   py.Int(garside.MaxIndex),
			"READ_ONLY":   py.Int(READ_ONLY),
		}

		py.RegisterModule(&py.ModuleImpl{
			Info: py.ModuleInfo{
				Name: "_pybraid",
				Doc:  "braid group Garside algorithms gpython module",
			},
			Methods: methods,
			Globals: globals,
			OnContextClosed: func(m *py.Module) {
				wsObj, _ := py.GetAttrString(m, kWorkspaceAttr)
				if wsObj != nil {
					wsObj.(*Workspace).Close()
				}
			},
		})
	}
}
