package pet

// notify prepends a message, trims the list to the configured maximum and
// schedules the message's own expiry.
func (s *Sim) notify(text string) {
	s.nextNoteID++
	n := Notification{ID: s.nextNoteID, Text: text, Created: s.sched.Now()}
	s.notifications = append([]Notification{n}, s.notifications...)

	limit := s.cfg.Notifications.Max
	if limit <= 0 {
		limit = 5
	}
	for len(s.notifications) > limit {
		last := s.notifications[len(s.notifications)-1]
		s.notifications = s.notifications[:len(s.notifications)-1]
		s.cancelNote(last.ID)
	}

	id := n.ID
	s.noteHandles[id] = s.sched.ScheduleOnce(s.cfg.Notifications.TTL, func() {
		delete(s.noteHandles, id)
		s.removeNote(id)
	})
}

func (s *Sim) removeNote(id uint64) {
	for i, n := range s.notifications {
		if n.ID == id {
			s.notifications = append(s.notifications[:i], s.notifications[i+1:]...)
			return
		}
	}
}

func (s *Sim) cancelNote(id uint64) {
	if h, ok := s.noteHandles[id]; ok {
		s.sched.Cancel(h)
		delete(s.noteHandles, id)
	}
}

func (s *Sim) clearNotifications() {
	for id, h := range s.noteHandles {
		s.sched.Cancel(h)
		delete(s.noteHandles, id)
	}
	s.notifications = nil
}

// Notifications returns the live messages, newest first.
func (s *Sim) Notifications() []Notification {
	return append([]Notification(nil), s.notifications...)
}

// NotificationTexts returns the live message texts, newest first.
func (s *Sim) NotificationTexts() []string {
	out := make([]string, len(s.notifications))
	for i, n := range s.notifications {
		out[i] = n.Text
	}
	return out
}
