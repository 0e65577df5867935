package apierrors

const (
	MsgFailListTask       = "errorListTask"
	MsgFailGetTask        = "failGetTask"
	MsgInvalidTaskID      = "invalidTaskID"
	MsgInvalidTaskPayload = "invalidTaskPayload"
	MsgInvalidField       = "invalidField"
	MsgTaskNotFound       = "taskNotFound"
	MsgUserNotFound       = "userNotFound"
	MsgTaskHierarchyCycle = "taskHierarchyCycle"
	MsgUsernameTaken      = "usernameTaken"
	MsgFailListSubtasks   = "failListSubtasks"
	MsgFailCreateTask     = "failCreateTask"
	MsgFailUpdateTask     = "failUpdateTask"
	MsgFailDeleteTask     = "failDeleteTask"
	MsgFailAddComment     = "failAddComment"
	MsgFailListComments   = "failListComments"
	MsgFailListUsers      = "failListUsers"
	MsgFailCreateUser     = "failCreateUser"
	MsgFailDashboard      = "failDashboard"
	MsgFailTimeline       = "failTimeline"
	MsgFailGanttChart     = "failGanttChart"
	MsgInvalidCredentials = "invalidCredentials"
	MsgUnauthorized       = "unauthorized"
	MsgFailLogin          = "failLogin"
)
