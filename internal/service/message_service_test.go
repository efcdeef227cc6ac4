package service

import (
	"errors"
	"testing"
	"time"

	"github.com/Darkone83/LoveByte/internal/config"
	"github.com/Darkone83/LoveByte/internal/domain"
	"github.com/Darkone83/LoveByte/internal/repository"
)

func newMessageService(t *testing.T) (*MessageService, *repository.DeviceRepository) {
	t.Helper()
	repo := repository.NewDeviceRepository()
	artifacts, err := repository.NewArtifactRepository(t.TempDir())
	if err != nil {
		t.Fatalf("NewArtifactRepository: %v", err)
	}
	transcoder := NewTranscoder(config.PanelConfig{Width: 320, Height: 170}, artifacts)
	return NewMessageService(repo, transcoder, NewBus()), repo
}

func TestPushAppliesDefaults(t *testing.T) {
	svc, repo := newMessageService(t)
	repo.CheckIn("alice", time.Now())

	msg, err := svc.Push("alice", PushInput{Text: "hi"})
	if err != nil {
		t.Fatalf("Push: %v", err)
	}

	if msg.Sender != "LoveByte server" {
		t.Errorf("sender: got %q", msg.Sender)
	}
	if msg.City != "Modesto" {
		t.Errorf("city: got %q", msg.City)
	}
	if msg.Country != "US" {
		t.Errorf("country: got %q", msg.Country)
	}
	if msg.TempF != 0 {
		t.Errorf("tempF: got %d", msg.TempF)
	}
	if msg.LedColor != "" || msg.HeartbeatColor != "" {
		t.Errorf("colors: got %q / %q, want empty", msg.LedColor, msg.HeartbeatColor)
	}
}

func TestPushNormalizesColors(t *testing.T) {
	svc, repo := newMessageService(t)
	repo.CheckIn("alice", time.Now())

	// Строка с решёткой
	msg, err := svc.Push("alice", PushInput{Text: "x", LedColor: "#ff00aa", UseLedColor: true})
	if err != nil {
		t.Fatalf("Push: %v", err)
	}
	if msg.LedColor != "FF00AA" {
		t.Errorf("string color: got %q, want FF00AA", msg.LedColor)
	}

	// Число, как его декодирует encoding/json
	msg, err = svc.Push("alice", PushInput{Text: "x", HeartbeatColor: float64(16711850), UseHeartbeat: true, HeartbeatPulses: 3})
	if err != nil {
		t.Fatalf("Push: %v", err)
	}
	if msg.HeartbeatColor != "FF00AA" {
		t.Errorf("number color: got %q, want FF00AA", msg.HeartbeatColor)
	}
	if msg.HeartbeatPulses != 3 {
		t.Errorf("pulses: got %d, want 3", msg.HeartbeatPulses)
	}
}

func TestPushNegativePulsesClamped(t *testing.T) {
	svc, repo := newMessageService(t)
	repo.CheckIn("alice", time.Now())

	msg, err := svc.Push("alice", PushInput{Text: "x", HeartbeatPulses: -5})
	if err != nil {
		t.Fatalf("Push: %v", err)
	}
	if msg.HeartbeatPulses != 0 {
		t.Errorf("pulses: got %d, want 0", msg.HeartbeatPulses)
	}
}

func TestPushUnknownRecipient(t *testing.T) {
	svc, repo := newMessageService(t)

	_, err := svc.Push("ghost", PushInput{Text: "hi"})
	if !errors.Is(err, ErrUnknownDevice) {
		t.Fatalf("Push: got %v, want ErrUnknownDevice", err)
	}
	// Запись устройства не должна была появиться
	if repo.IsKnown("ghost") {
		t.Error("Push created a device record")
	}
}

// Сценарий из жизни: регистрация с пробелами и регистром,
// push по нормализованному имени, pull в другом регистре
func TestCaseInsensitiveRoundTrip(t *testing.T) {
	svc, repo := newMessageService(t)
	repo.CheckIn(domain.NormalizeDeviceID("Alice "), time.Now())

	if _, err := svc.Push("alice", PushInput{Text: "hi"}); err != nil {
		t.Fatalf("Push: %v", err)
	}

	msgs, err := svc.Pull("ALICE")
	if err != nil {
		t.Fatalf("Pull: %v", err)
	}
	if len(msgs) != 1 {
		t.Fatalf("Pull: got %d messages, want 1", len(msgs))
	}
	if msgs[0].Text != "hi" {
		t.Errorf("text: got %q", msgs[0].Text)
	}
	if msgs[0].City != "Modesto" {
		t.Errorf("city: got %q", msgs[0].City)
	}

	// Повторный pull — пусто, но не ошибка
	msgs, err = svc.Pull("alice")
	if err != nil {
		t.Fatalf("second Pull: %v", err)
	}
	if len(msgs) != 0 {
		t.Errorf("second Pull: got %d messages, want 0", len(msgs))
	}
	if msgs == nil {
		t.Error("second Pull: got nil slice, want empty")
	}
}

func TestPullUnknownDevice(t *testing.T) {
	svc, _ := newMessageService(t)
	if _, err := svc.Pull("ghost"); !errors.Is(err, ErrUnknownDevice) {
		t.Fatalf("Pull: got %v, want ErrUnknownDevice", err)
	}
	// Пустой id после нормализации тоже неизвестен
	if _, err := svc.Pull("   "); !errors.Is(err, ErrUnknownDevice) {
		t.Fatalf("Pull blank: got %v, want ErrUnknownDevice", err)
	}
}

func TestPushImageQueuesImageMessage(t *testing.T) {
	svc, repo := newMessageService(t)
	repo.CheckIn("alice", time.Now())

	artifact, result, err := svc.PushImage("alice", "photo.png", encodePNG(t, 64, 48))
	if err != nil {
		t.Fatalf("PushImage: %v", err)
	}
	if result != "JPG/PNG resized" {
		t.Errorf("result: got %q", result)
	}

	msgs, err := svc.Pull("alice")
	if err != nil {
		t.Fatalf("Pull: %v", err)
	}
	if len(msgs) != 1 {
		t.Fatalf("Pull: got %d messages, want 1", len(msgs))
	}
	if !msgs[0].IsImage() {
		t.Fatal("queued message is not an image message")
	}
	if msgs[0].ArtifactRef() != artifact {
		t.Errorf("artifact ref: got %q, want %q", msgs[0].ArtifactRef(), artifact)
	}
	if msgs[0].UseLedColor || msgs[0].UseHeartbeat {
		t.Error("image message must have color fields off")
	}
}

func TestPushImageUnknownRecipient(t *testing.T) {
	svc, _ := newMessageService(t)
	_, _, err := svc.PushImage("ghost", "photo.png", encodePNG(t, 8, 8))
	if !errors.Is(err, ErrUnknownDevice) {
		t.Fatalf("PushImage: got %v, want ErrUnknownDevice", err)
	}
}

func TestPushImageUnsupportedFormat(t *testing.T) {
	svc, repo := newMessageService(t)
	repo.CheckIn("alice", time.Now())

	_, _, err := svc.PushImage("alice", "notes.txt", []byte("not an image"))
	if !errors.Is(err, ErrUnsupportedFormat) {
		t.Fatalf("PushImage: got %v, want ErrUnsupportedFormat", err)
	}

	// Очередь осталась пустой
	msgs, _ := svc.Pull("alice")
	if len(msgs) != 0 {
		t.Errorf("queue not empty after failed upload: %d messages", len(msgs))
	}
}
