// Command shield-clock drives the multifunction shield's 7-segment display
// as a stopwatch with a button-held voltmeter mode, and publishes state
// changes to MQTT.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sweeney/shield-clock/internal/adc"
	"github.com/sweeney/shield-clock/internal/buttons"
	"github.com/sweeney/shield-clock/internal/clock"
	"github.com/sweeney/shield-clock/internal/mqtt"
	"github.com/sweeney/shield-clock/internal/sevenseg"
	"github.com/sweeney/shield-clock/internal/shiftreg"
	"github.com/sweeney/shield-clock/internal/status"
	"github.com/sweeney/shield-clock/internal/web"
)

func main() {
	tick := flag.Duration("tick", time.Second, "Stopwatch tick interval")
	refresh := flag.Duration("refresh", 4*time.Millisecond, "Display refresh interval (one digit per tick)")
	broker := flag.String("broker", "tcp://192.168.1.200:1883", "MQTT broker address")
	heartbeat := flag.Duration("heartbeat", 15*time.Minute, "Heartbeat interval (0 to disable)")
	pinData := flag.Int("pin-data", shiftreg.DefaultPinData, "BCM pin number for shift register data")
	pinClock := flag.Int("pin-clock", shiftreg.DefaultPinClock, "BCM pin number for shift register clock")
	pinLatch := flag.Int("pin-latch", shiftreg.DefaultPinLatch, "BCM pin number for shift register latch")
	pinReset := flag.Int("pin-reset", buttons.DefaultPinReset, "BCM pin number for the reset button (S1)")
	pinMode := flag.Int("pin-mode", buttons.DefaultPinMode, "BCM pin number for the mode button (S3)")
	adcDevice := flag.String("adc-device", adc.DefaultDevice, "IIO sysfs directory of the potentiometer ADC")
	adcChannel := flag.Int("adc-channel", adc.DefaultChannel, "ADC channel the potentiometer is wired to")
	printState := flag.Bool("print-state", false, "Print current potentiometer voltage and exit")
	httpAddr := flag.String("http", ":80", "HTTP status address (empty to disable)")
	wsBroker := flag.String("ws-broker", "=broker", `MQTT websocket URL for live UI ("=broker" derives from --broker, "off" disables)`)

	flag.Parse()

	ws := resolveWSBroker(*wsBroker, *broker)
	if err := run(*tick, *refresh, *broker, *heartbeat,
		*pinData, *pinClock, *pinLatch, *pinReset, *pinMode,
		*adcDevice, *adcChannel, *printState, *httpAddr, ws); err != nil {
		log.Fatalf("fatal: %v", err)
	}
}

func run(tick, refresh time.Duration, broker string, heartbeat time.Duration,
	pinData, pinClock, pinLatch, pinReset, pinMode int,
	adcDevice string, adcChannel int, printState bool, httpAddr, wsBroker string) error {
	// Initialize ADC first: print-state needs nothing else.
	pot, err := adc.NewIIOReader(adcDevice, adcChannel)
	if err != nil {
		return fmt.Errorf("init adc: %w", err)
	}
	defer pot.Close()

	// Print state mode
	if printState {
		v, err := pot.Read()
		if err != nil {
			return fmt.Errorf("read adc: %w", err)
		}
		fmt.Printf("pot: %.3f V\n", v)
		return nil
	}

	// Initialize display and buttons
	display, err := shiftreg.NewRealWriter(pinData, pinClock, pinLatch)
	if err != nil {
		return fmt.Errorf("init display: %w", err)
	}
	defer display.Close()

	watcher, err := buttons.NewRealWatcher(pinReset, pinMode)
	if err != nil {
		return fmt.Errorf("init buttons: %w", err)
	}
	defer watcher.Close()

	// Initialize MQTT
	publisher := mqtt.NewRealPublisher(broker)
	defer publisher.Close()

	// Initialize status tracker (before STARTUP so snapshot is available)
	tracker := status.NewTracker(time.Now(), status.Config{
		TickMs:      tick.Milliseconds(),
		RefreshMs:   refresh.Milliseconds(),
		HeartbeatMs: heartbeat.Milliseconds(),
		Broker:      broker,
		HTTPPort:    httpAddr,
		WSBroker:    wsBroker,
	})
	if net := readNetworkInfo(); net != nil {
		tracker.SetNetwork(net)
	}

	// Publish startup event with full status snapshot
	snap := tracker.Snapshot()
	startupEvent := mqtt.SystemEvent{
		Timestamp:  snap.Now,
		Event:      "STARTUP",
		Retained:   true,
		RawPayload: status.FormatStatusEvent(snap, "STARTUP", ""),
	}
	if err := publisher.PublishSystem(startupEvent); err != nil {
		log.Printf("failed to publish startup event: %v", err)
	} else {
		log.Printf("published startup event")
	}

	// Start HTTP status server
	if httpAddr != "" {
		srv := web.New(httpAddr, tracker)
		go func() {
			if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				log.Printf("http server error: %v", err)
			}
		}()
		defer srv.Shutdown(context.Background())
		log.Printf("http status server listening on %s", httpAddr)
	}

	log.Printf("started: tick=%v refresh=%v broker=%s heartbeat=%v", tick, refresh, broker, heartbeat)

	secTicker := time.NewTicker(tick)
	defer secTicker.Stop()
	refreshTicker := time.NewTicker(refresh)
	defer refreshTicker.Stop()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	return runLoop(display, pot, watcher.Events(), publisher, publisher, tracker,
		heartbeat, time.Now, secTicker.C, refreshTicker.C, sigCh)
}

func runLoop(display shiftreg.Writer, pot adc.Reader, events <-chan buttons.Event,
	publisher mqtt.Publisher, mqttStatus mqtt.ConnectionStatus, tracker *status.Tracker,
	heartbeat time.Duration, now func() time.Time,
	secTick, refreshTick <-chan time.Time, sig <-chan os.Signal) error {
	sw := clock.NewStopwatch(now())
	cursor := 0
	var frames uint64

	var sample func() (float64, error)
	if pot != nil {
		sample = pot.Read
	}

	updateTracker := func() {
		if tracker == nil {
			return
		}
		m, s := sw.Elapsed()
		minV, maxV := sw.MinMax()
		tracker.Update(m, s, sw.VoltMode(), minV, maxV, sw.Counts())
		if mqttStatus != nil {
			tracker.SetMQTTConnected(mqttStatus.IsConnected())
		}
	}

	for {
		select {
		case s := <-sig:
			log.Printf("received %v, shutting down", s)
			signalName := "UNKNOWN"
			if s == syscall.SIGINT {
				signalName = "SIGINT"
			} else if s == syscall.SIGTERM {
				signalName = "SIGTERM"
			}
			event := mqtt.SystemEvent{
				Timestamp: now(),
				Event:     "SHUTDOWN",
				Reason:    signalName,
				Retained:  true,
			}
			if tracker != nil {
				if mqttStatus != nil {
					tracker.SetMQTTConnected(mqttStatus.IsConnected())
				}
				snap := tracker.Snapshot()
				event.RawPayload = status.FormatStatusEvent(snap, "SHUTDOWN", signalName)
			}
			if err := publisher.PublishSystem(event); err != nil {
				log.Printf("failed to publish shutdown event: %v", err)
			} else {
				log.Printf("published shutdown event")
			}
			return nil

		case <-secTick:
			t := now()
			sw.TickSecond()
			updateTracker()

			// Check for heartbeat
			if hb := sw.CheckHeartbeat(t, heartbeat); hb != nil {
				m, s := sw.Elapsed()
				log.Printf("heartbeat: uptime=%v elapsed=%s resets=%d mode_on=%d mode_off=%d",
					hb.Uptime, mqtt.FormatElapsed(m, s), hb.Counts.Resets, hb.Counts.ModeOn, hb.Counts.ModeOff)

				hbEvent := mqtt.SystemEvent{
					Timestamp: hb.Timestamp,
					Event:     "HEARTBEAT",
				}
				if tracker != nil {
					// Refresh network info for heartbeat
					if net := readNetworkInfo(); net != nil {
						tracker.SetNetwork(net)
					}
					snap := tracker.Snapshot()
					hbEvent.RawPayload = status.FormatStatusEvent(snap, "HEARTBEAT", "")
				}
				if err := publisher.PublishSystem(hbEvent); err != nil {
					log.Printf("heartbeat publish error: %v", err)
				}
			}

		case <-refreshTick:
			bits, sel := sw.RefreshDigit(cursor, sample)
			if err := display.Write(bits, sel); err != nil {
				log.Printf("display write error: %v", err)
				// Don't crash on display failure
			} else {
				frames++
				if tracker != nil {
					tracker.SetFrames(frames)
				}
			}
			cursor = (cursor + 1) % sevenseg.Digits
			updateTracker()

		case e := <-events:
			t := now()
			var event *clock.Event
			switch e.Button {
			case buttons.ButtonReset:
				// S1 presses arrive as rising edges; the release edge is ignored.
				if e.Rising {
					ev := sw.Reset(t)
					event = &ev
				}
			case buttons.ButtonMode:
				// S3 presses arrive as falling edges, releases as rising edges.
				event = sw.SetVoltMode(!e.Rising, t)
			}

			if event != nil {
				log.Printf("event: %s (elapsed=%s)", event.Type, mqtt.FormatElapsed(event.Minutes, event.Seconds))
				if err := publisher.Publish(*event); err != nil {
					log.Printf("publish error: %v", err)
					// Don't crash on publish failure
				}
			}
			updateTracker()
		}
	}
}

// pi-helper env var names (written to /run/pi-helper.env).
const (
	envNetworkType       = "NETWORK_TYPE"
	envNetworkIP         = "NETWORK_IP"
	envNetworkStatus     = "NETWORK_STATUS"
	envNetworkGateway    = "NETWORK_GATEWAY"
	envNetworkWifiStatus = "NETWORK_WIFI_STATUS"
	envNetworkWifiSSID   = "NETWORK_WIFI_SSID"
)

func readNetworkInfo() *status.NetworkInfo {
	s := os.Getenv(envNetworkStatus)
	if s == "" {
		return nil
	}
	return &status.NetworkInfo{
		Type:       os.Getenv(envNetworkType),
		IP:         os.Getenv(envNetworkIP),
		Status:     s,
		Gateway:    os.Getenv(envNetworkGateway),
		WifiStatus: os.Getenv(envNetworkWifiStatus),
		SSID:       os.Getenv(envNetworkWifiSSID),
	}
}

// resolveWSBroker converts the --ws-broker flag value into a concrete URL.
// "=broker" derives ws://host:9001 from the TCP broker address; "off" disables.
func resolveWSBroker(ws, broker string) string {
	if ws == "off" {
		return ""
	}
	if ws != "=broker" {
		return ws
	}
	u, err := url.Parse(broker)
	if err != nil {
		log.Printf("ws-broker: cannot parse --broker %q: %v", broker, err)
		return ""
	}
	u.Scheme = "ws"
	u.Host = u.Hostname() + ":9001"
	return u.String()
}
