package domain

import (
	"fmt"
	"time"
)

// ScheduleType — целочисленный тег варианта Schedule, сохраняемый в БД
// (1 = Once, 2 = Range).
type ScheduleType int16

const (
	// ScheduleTypeOnce — однократное срабатывание в NextRun.
	ScheduleTypeOnce ScheduleType = 1

	// ScheduleTypeRange — повторное срабатывание от Start до End включительно,
	// с шагом Step.
	ScheduleTypeRange ScheduleType = 2
)

// DefaultRangeStep — шаг между срабатываниями Range по умолчанию, если Task
// создан без явного шага.
const DefaultRangeStep = 24 * time.Hour

// Schedule — размеченный вариант, описывающий когда срабатывает Task. Once не
// несёт дополнительных полей сверх Task.NextRun; Range дополнительно несёт
// Start, End и Step.
type Schedule struct {
	Type ScheduleType

	// Start и End ограничивают Range (включительно). Нулевые для Once.
	Start time.Time
	End   time.Time

	// Step — шаг между срабатываниями Range. Нулевой для Once.
	Step time.Duration
}

// Once возвращает Schedule с однократным срабатыванием.
func Once() Schedule {
	return Schedule{Type: ScheduleTypeOnce}
}

// RangeSchedule возвращает Schedule, повторяющийся от start до end с шагом
// step. Если step нулевой или отрицательный, используется DefaultRangeStep.
func RangeSchedule(start, end time.Time, step time.Duration) Schedule {
	if step <= 0 {
		step = DefaultRangeStep
	}
	return Schedule{Type: ScheduleTypeRange, Start: start.UTC(), End: end.UTC(), Step: step}
}

// Validate проверяет инварианты Schedule: для Range start не должен быть
// позже end.
func (s Schedule) Validate() error {
	switch s.Type {
	case ScheduleTypeOnce:
		return nil
	case ScheduleTypeRange:
		if s.Start.After(s.End) {
			return fmt.Errorf("%w: range start %s is after end %s", ErrInvalidSchedule, s.Start, s.End)
		}
		return nil
	default:
		return fmt.Errorf("%w: unknown schedule type %d", ErrInvalidSchedule, s.Type)
	}
}

// IsOnce — true для варианта с однократным срабатыванием.
func (s Schedule) IsOnce() bool { return s.Type == ScheduleTypeOnce }

// IsRange — true для варианта с ограниченным повтором.
func (s Schedule) IsRange() bool { return s.Type == ScheduleTypeRange }
