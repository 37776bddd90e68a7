package model

import internalmodel "github.com/goliatone/go-schemaform/internal/model"

// Category re-exports the internal category enumeration.
type Category = internalmodel.Category

const (
	CategoryUnknown     = internalmodel.CategoryUnknown
	CategoryPrimitive   = internalmodel.CategoryPrimitive
	CategoryEnumeration = internalmodel.CategoryEnumeration
	CategoryConstrained = internalmodel.CategoryConstrained
	CategoryRecord      = internalmodel.CategoryRecord
	CategoryList        = internalmodel.CategoryList
	CategoryMap         = internalmodel.CategoryMap
	CategoryTuple       = internalmodel.CategoryTuple
	CategoryAlternative = internalmodel.CategoryAlternative
)

type Descriptor = internalmodel.Descriptor
type Attributes = internalmodel.Attributes
type InnerInfo = internalmodel.InnerInfo
type ElemInfo = internalmodel.ElemInfo
type MapInfo = internalmodel.MapInfo
type AlternativeInfo = internalmodel.AlternativeInfo
type VisitFunc = internalmodel.VisitFunc
type Guard = internalmodel.Guard
type Issue = internalmodel.Issue
type IssueKind = internalmodel.IssueKind

const (
	IssueMapKey      = internalmodel.IssueMapKey
	IssueMapValue    = internalmodel.IssueMapValue
	IssueListElement = internalmodel.IssueListElement
)

type UnclassifiableTypeError = internalmodel.UnclassifiableTypeError
type CycleError = internalmodel.CycleError

var (
	ErrUnclassifiableType = internalmodel.ErrUnclassifiableType
	ErrIncompleteMap      = internalmodel.ErrIncompleteMap
	ErrCyclicSchema       = internalmodel.ErrCyclicSchema
	ErrDepthExceeded      = internalmodel.ErrDepthExceeded
)

// DefaultMaxDepth bounds record nesting when no explicit limit is set.
const DefaultMaxDepth = internalmodel.DefaultMaxDepth

var (
	Categories        = internalmodel.Categories
	Classify          = internalmodel.Classify
	InputType         = internalmodel.InputType
	IsPrimitive       = internalmodel.IsPrimitive
	NewAttributes     = internalmodel.NewAttributes
	NewGuard          = internalmodel.NewGuard
	Inspect           = internalmodel.Inspect
	SupportedMapValue = internalmodel.SupportedMapValue
	JoinPath          = internalmodel.JoinPath
	KeyFieldName      = internalmodel.KeyFieldName
	ValueFieldName    = internalmodel.ValueFieldName
	ListFieldName     = internalmodel.ListFieldName
	IsKeySegment      = internalmodel.IsKeySegment
	IsValueSegment    = internalmodel.IsValueSegment
	IsListSegment     = internalmodel.IsListSegment
	DefaultLabeler    = internalmodel.DefaultLabeler
	PascalName        = internalmodel.PascalName
)
