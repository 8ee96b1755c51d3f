package handler

type ContextKey string

var (
	RoleCtxKey       ContextKey = "role"
	SubCtxKey        ContextKey = "sub"
	MyInfoCtx        ContextKey = "myInfo"
	BusinessCtx      ContextKey = "business"
	ShiftTemplateCtx ContextKey = "shiftTemplate"
	ScheduleCtx      ContextKey = "schedule"
)
