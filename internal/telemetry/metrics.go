package telemetry

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Метрики планировщика, экспортируемые на /metrics.
var (
	// TasksSubmittedTotal — счётчик успешных Submit.
	TasksSubmittedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "tasksched_tasks_submitted_total",
		Help: "Total number of tasks accepted by Submit.",
	})

	// TasksExecutedTotal — счётчик вызовов executor'а (включая повторы).
	TasksExecutedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "tasksched_tasks_executed_total",
		Help: "Total number of executor invocations, including retries.",
	})

	// TasksRetriedTotal — счётчик неуспешных попыток, за которыми следует retry.
	TasksRetriedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "tasksched_tasks_retried_total",
		Help: "Total number of attempts that failed and were retried.",
	})

	// TasksSucceededTotal — счётчик активаций, завершившихся успехом.
	TasksSucceededTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "tasksched_tasks_succeeded_total",
		Help: "Total number of activations that ended in success.",
	})

	// TasksExhaustedTotal — счётчик активаций, исчерпавших max_retries.
	TasksExhaustedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "tasksched_tasks_exhausted_total",
		Help: "Total number of activations that exhausted max_retries.",
	})

	// TasksInFlight — число задач, находящихся в исполнении прямо сейчас
	// (размер executing_tasks).
	TasksInFlight = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "tasksched_tasks_in_flight",
		Help: "Number of tasks currently executing (size of the in-flight set).",
	})
)
