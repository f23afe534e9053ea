package telnet

import "testing"

func TestEnableThenAgreeReachesYes(t *testing.T) {
	var s side
	if !s.enable() {
		t.Fatal("expected enable() to request a send from NO")
	}
	ack, refuse := s.recvAgree(true)
	if ack || refuse {
		t.Fatalf("agreeing with our own request should not need another send, got ack=%v refuse=%v", ack, refuse)
	}
	if !s.enabled() {
		t.Fatal("expected side to settle at YES")
	}
}

func TestUnsolicitedOfferWeWantIsAcked(t *testing.T) {
	var s side
	ack, refuse := s.recvAgree(true)
	if !ack || refuse {
		t.Fatalf("expected an ack with no refusal, got ack=%v refuse=%v", ack, refuse)
	}
	if !s.enabled() {
		t.Fatal("expected side to settle at YES")
	}
}

func TestUnsolicitedOfferWeDontWantIsRefused(t *testing.T) {
	var s side
	ack, refuse := s.recvAgree(false)
	if !ack || !refuse {
		t.Fatalf("expected a refusal ack, got ack=%v refuse=%v", ack, refuse)
	}
	if s.enabled() {
		t.Fatal("expected side to stay at NO after refusal")
	}
}

func TestDisableThenConfirmReachesNo(t *testing.T) {
	var s side
	s.enable()
	s.recvAgree(true)
	if !s.disable() {
		t.Fatal("expected disable() to request a send from YES")
	}
	if s.recvRefuse() {
		t.Fatal("peer confirming our own WONT/DONT should not need another send")
	}
	if s.enabled() {
		t.Fatal("expected side to settle at NO")
	}
}

func TestRepeatedEnableDuringWantYesDoesNotResend(t *testing.T) {
	var s side
	s.enable()
	if s.enable() {
		t.Fatal("a second enable() while still WANT-YES must not send again")
	}
}
