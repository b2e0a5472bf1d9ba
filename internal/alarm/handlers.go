package alarm

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/verte-zerg/salat/internal/kv"
	"github.com/verte-zerg/salat/internal/model"
	"github.com/verte-zerg/salat/internal/notify"
	"github.com/verte-zerg/salat/internal/prayer"
	"github.com/verte-zerg/salat/internal/settings"
)

const (
	adhanVibrate = time.Second
	azkarVibrate = 600 * time.Millisecond
)

// AdhanHandler serves adhan, next-adhan and pre-adhan tasks. Each output is
// gated by its own setting and failures of one never block the others.
type AdhanHandler struct {
	Settings kv.Store
	// Notifier shows the prayer notification.
	Notifier notify.Notifier
	// Audio plays the adhan.
	Audio notify.Notifier
	// Buzzer stands in for device vibration.
	Buzzer notify.Notifier
}

// Handle implements Handler.
func (h AdhanHandler) Handle(ctx context.Context, task model.AlarmTask, firedAt time.Time) error {
	snap, err := settings.Load(ctx, h.Settings)
	if err != nil {
		return err
	}
	msg := AdhanMessage(task, snap.Language, firedAt)
	if _, early := task.Payload[PayloadLeadMinutes]; early {
		if !snap.EnablePrayerNotif || h.Notifier == nil {
			return nil
		}
		return h.Notifier.Notify(ctx, msg)
	}

	if snap.EnableVibrate && h.Buzzer != nil {
		buzz := msg
		buzz.Vibrate = adhanVibrate
		if err := h.Buzzer.Notify(ctx, buzz); err != nil {
			log.Debug().Err(err).Msg("buzzer failed")
		}
	}
	var errs []error
	if snap.EnableAdhan && h.Audio != nil {
		if err := h.Audio.Notify(ctx, msg); err != nil {
			errs = append(errs, fmt.Errorf("adhan audio: %w", err))
		}
	}
	if snap.EnablePrayerNotif && h.Notifier != nil {
		if err := h.Notifier.Notify(ctx, msg); err != nil {
			errs = append(errs, fmt.Errorf("prayer notification: %w", err))
		}
	}
	if len(errs) > 0 {
		return errs[0]
	}
	return nil
}

// AdhanMessage renders the notification of an adhan task. A missing or
// unknown prayer name falls back to a generic label.
func AdhanMessage(task model.AlarmTask, language string, at time.Time) notify.Message {
	arabic := language == "" || language == "ar"
	raw := task.Payload[PayloadPrayerName]
	timeText := strings.TrimSpace(task.Payload[PayloadPrayerTime])
	name := "Prayer"
	if arabic {
		name = "الصلاة"
	}
	if p, ok := prayer.ParsePrayer(raw); ok {
		name = p.Title()
		if arabic {
			name = p.Arabic()
		}
		raw = p.String()
	}

	msg := notify.Message{
		Kind:   notify.KindAdhan,
		Prayer: raw,
		Time:   timeText,
		At:     at,
		Body:   name,
	}
	if timeText != "" {
		msg.Body = name + " - " + timeText
	}
	if lead := task.Payload[PayloadLeadMinutes]; lead != "" {
		msg.Kind = notify.KindPreAdhan
		if arabic {
			msg.Title = fmt.Sprintf("بقي %s دقائق على %s", lead, name)
		} else {
			msg.Title = fmt.Sprintf("%s in %s minutes", name, lead)
		}
		return msg
	}
	if arabic {
		msg.Title = "حان الآن وقت " + name
	} else {
		msg.Title = "It is now time for " + name
	}
	return msg
}

// AzkarHandler serves the morning, evening and sleep reminders.
type AzkarHandler struct {
	Settings kv.Store
	Notifier notify.Notifier
}

// Handle implements Handler.
func (h AzkarHandler) Handle(ctx context.Context, task model.AlarmTask, firedAt time.Time) error {
	snap, err := settings.Load(ctx, h.Settings)
	if err != nil {
		return err
	}
	if !snap.EnableAzkarNotif || h.Notifier == nil {
		return nil
	}
	msg := AzkarMessage(task, firedAt)
	if snap.EnableVibrate {
		msg.Vibrate = azkarVibrate
	}
	return h.Notifier.Notify(ctx, msg)
}

// AzkarMessage renders an azkar task, filling in default wording.
func AzkarMessage(task model.AlarmTask, at time.Time) notify.Message {
	title := task.Payload[PayloadTitle]
	if title == "" {
		title = "تذكير بالأذكار"
	}
	body := task.Payload[PayloadBody]
	if body == "" {
		body = "لا تنس أذكارك"
	}
	return notify.Message{Kind: notify.KindAzkar, Title: title, Body: body, At: at}
}
