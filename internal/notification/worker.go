package notification

import (
	"context"
	"fmt"
	"net/http"

	"github.com/SherClockHolmes/webpush-go"
	log "github.com/sirupsen/logrus"

	"roster-backend/internal/model"
	"roster-backend/internal/store"
)

// EventKind says what happened to an assignment.
type EventKind string

const (
	EventAssigned   EventKind = "assigned"
	EventUnassigned EventKind = "unassigned"
)

// Event is dispatched after an assignment transaction commits. WorkerID
// is the worker to alert: the new assignee on assignment, the previous
// assignee on unassignment.
type Event struct {
	Kind     EventKind
	ShiftID  string
	WorkerID string
}

// Sender defines the interface for sending a web push notification.
type Sender interface {
	Send(payload []byte, sub *webpush.Subscription, options *webpush.Options) (*http.Response, error)
}

// WebPushSender is the real Sender backed by the webpush library.
type WebPushSender struct{}

func (s *WebPushSender) Send(payload []byte, sub *webpush.Subscription, options *webpush.Options) (*http.Response, error) {
	return webpush.SendNotification(payload, sub, options)
}

// WorkerPool fans assignment events out to web push subscribers.
// Notifications happen strictly after the engine transaction commits;
// a failed push never affects roster state.
type WorkerPool struct {
	size    int
	jobs    chan Event
	store   store.Store
	webpush *webpush.Options
	sender  Sender
}

// NewWorkerPool creates a new notification worker pool.
func NewWorkerPool(size int, st store.Store, webpushOptions *webpush.Options) *WorkerPool {
	return &WorkerPool{
		size:    size,
		jobs:    make(chan Event, size),
		store:   st,
		webpush: webpushOptions,
		sender:  &WebPushSender{},
	}
}

// Start launches the worker goroutines.
func (wp *WorkerPool) Start(ctx context.Context) {
	for i := 0; i < wp.size; i++ {
		go wp.worker(ctx, i)
	}
}

func (wp *WorkerPool) worker(ctx context.Context, id int) {
	log.Printf("notification worker %d started", id)
	for {
		select {
		case event := <-wp.jobs:
			wp.notify(ctx, event)
		case <-ctx.Done():
			log.Printf("notification worker %d shutting down", id)
			return
		}
	}
}

// Dispatch queues an event for delivery. Safe to call from request
// handlers; blocks only when the buffer is full.
func (wp *WorkerPool) Dispatch(event Event) {
	wp.jobs <- event
}

// Jobs returns the jobs channel for testing.
func (wp *WorkerPool) Jobs() chan Event {
	return wp.jobs
}

func (wp *WorkerPool) notify(ctx context.Context, event Event) {
	subscriptions, err := wp.store.SubscriptionsForWorker(ctx, event.WorkerID)
	if err != nil {
		log.Printf("error fetching subscriptions for worker %s: %v", event.WorkerID, err)
		return
	}
	if len(subscriptions) == 0 {
		return
	}

	message := wp.message(ctx, event)
	log.Printf("sending %d notifications for shift %s", len(subscriptions), event.ShiftID)

	for _, sub := range subscriptions {
		wp.send(ctx, sub, []byte(message))
	}
}

func (wp *WorkerPool) message(ctx context.Context, event Event) string {
	label := event.ShiftID
	if shift, err := wp.store.GetShift(ctx, event.ShiftID); err == nil {
		label = fmt.Sprintf("%s %s–%s", shift.Date, shift.StartTime, shift.EndTime)
	} else {
		log.Printf("error fetching shift %s: %v", event.ShiftID, err)
	}

	if event.Kind == EventUnassigned {
		return fmt.Sprintf("Your shift %s has been unassigned.", label)
	}
	return fmt.Sprintf("You have been assigned shift %s.", label)
}

func (wp *WorkerPool) send(ctx context.Context, sub model.PushSubscription, payload []byte) {
	wpSub := &webpush.Subscription{
		Endpoint: sub.Endpoint,
		Keys: webpush.Keys{
			P256dh: sub.P256DH,
			Auth:   sub.Auth,
		},
	}

	resp, err := wp.sender.Send(payload, wpSub, wp.webpush)
	if err != nil {
		log.Printf("error sending notification to %s: %v", sub.Endpoint, err)
		return
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusGone {
		log.Printf("subscription %s is expired, deleting", sub.Endpoint)
		if err := wp.store.DeleteSubscription(ctx, sub.Endpoint); err != nil {
			log.Printf("failed to delete expired subscription %s: %v", sub.Endpoint, err)
		}
	}
}
