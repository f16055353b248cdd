package application

import "expvar"

// Counters published under /api/debug/vars.
var (
	signupsTotal       = expvar.NewInt("todo_signups_total")
	loginsTotal        = expvar.NewInt("todo_logins_total")
	loginFailuresTotal = expvar.NewInt("todo_login_failures_total")
	tasksCreatedTotal  = expvar.NewInt("todo_tasks_created_total")
	tasksDeletedTotal  = expvar.NewInt("todo_tasks_deleted_total")
)
