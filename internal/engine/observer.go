package engine

import "fmt"

// TickLimit returns an Observer that stops any run still unfinished once
// limit ticks have elapsed. A non-positive limit never stops a run.
func TickLimit(limit int) Observer {
	return func(s *Snapshot) error {
		if limit <= 0 || s.Time < limit {
			return nil
		}
		for i := range s.Processes {
			if !s.Processes[i].State.IsTerminal() {
				return fmt.Errorf("tick limit %d reached", limit)
			}
		}
		return nil
	}
}

// Chain calls each non-nil observer in order and stops at the first error.
func Chain(observers ...Observer) Observer {
	var active []Observer
	for _, o := range observers {
		if o != nil {
			active = append(active, o)
		}
	}
	switch len(active) {
	case 0:
		return nil
	case 1:
		return active[0]
	}
	return func(s *Snapshot) error {
		for _, o := range active {
			if err := o(s); err != nil {
				return err
			}
		}
		return nil
	}
}
