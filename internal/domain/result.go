package domain

// Outcome is implemented by every result variant, success and error alike.
// Callers branch on the concrete type (or Succeeded) before touching any payload;
// the discriminant is fixed at construction and never changes.
type Outcome interface {
	Succeeded() bool
}

// Success is embedded by success variants. It pins the discriminant to true.
type Success struct{}

func (Success) Succeeded() bool { return true }

// IsSuccess reports whether o is a success variant.
func IsSuccess(o Outcome) bool {
	return o != nil && o.Succeeded()
}

// IsError reports whether o is an error variant.
func IsError(o Outcome) bool {
	return o != nil && !o.Succeeded()
}

// Per-operation result unions. Each union is a sealed interface: the marker
// method is unexported, so the set of variants is closed and known at the call
// site. Handlers recover the concrete variant with a type switch.

// CreateEntityResult is CreateEntitySuccess, *ValidationError, *ConflictError
// or *UnauthorizedError.
type CreateEntityResult interface {
	Outcome
	isCreateEntityResult()
}

// GetEntityResult is GetEntitySuccess, *NotFoundError or *UnauthorizedError.
type GetEntityResult interface {
	Outcome
	isGetEntityResult()
}

// UpdateEntityResult is UpdateEntitySuccess, *NotFoundError, *ValidationError,
// *ConflictError, *UnauthorizedError or *BusinessRuleViolationError.
type UpdateEntityResult interface {
	Outcome
	isUpdateEntityResult()
}

// DeleteEntityResult is DeleteEntitySuccess, *NotFoundError, *UnauthorizedError
// or *BusinessRuleViolationError.
type DeleteEntityResult interface {
	Outcome
	isDeleteEntityResult()
}

// CreateEntitySuccess carries the entity produced by a create operation.
type CreateEntitySuccess struct {
	Success
	EntityID string
	Entity   Entity
}

// GetEntitySuccess carries the entity found by a lookup.
type GetEntitySuccess struct {
	Success
	Entity Entity
}

// UpdateEntitySuccess carries the updated entity and the names of the fields
// that actually changed.
type UpdateEntitySuccess struct {
	Success
	Entity        Entity
	UpdatedFields []string
}

// DeleteEntitySuccess carries the identifier of the removed entity.
type DeleteEntitySuccess struct {
	Success
	EntityID string
}

func (CreateEntitySuccess) isCreateEntityResult() {}
func (GetEntitySuccess) isGetEntityResult()       {}
func (UpdateEntitySuccess) isUpdateEntityResult() {}
func (DeleteEntitySuccess) isDeleteEntityResult() {}

func (*ValidationError) isCreateEntityResult() {}
func (*ConflictError) isCreateEntityResult()   {}

func (*NotFoundError) isGetEntityResult() {}

func (*NotFoundError) isUpdateEntityResult()              {}
func (*ValidationError) isUpdateEntityResult()            {}
func (*ConflictError) isUpdateEntityResult()              {}
func (*BusinessRuleViolationError) isUpdateEntityResult() {}

func (*NotFoundError) isDeleteEntityResult()              {}
func (*BusinessRuleViolationError) isDeleteEntityResult() {}

func (*UnauthorizedError) isCreateEntityResult() {}
func (*UnauthorizedError) isGetEntityResult()    {}
func (*UnauthorizedError) isUpdateEntityResult() {}
func (*UnauthorizedError) isDeleteEntityResult() {}
