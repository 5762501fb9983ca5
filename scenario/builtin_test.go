package scenario

import (
	"bytes"
	"reflect"
	"strings"
	"testing"

	"github.com/mgomes/handoff/pact"
)

func TestBuiltinCatalogContents(t *testing.T) {
	cat := Builtin()

	if got, want := cat.Contracts(), []string{"courier", "routable", "zoned-courier"}; !reflect.DeepEqual(got, want) {
		t.Fatalf("Contracts() = %v, want %v", got, want)
	}
	if got, want := cat.Conformers(), []string{"bike", "drone", "pager"}; !reflect.DeepEqual(got, want) {
		t.Fatalf("Conformers() = %v, want %v", got, want)
	}

	for _, kind := range cat.Conformers() {
		p, ok := cat.Conformer(kind)
		if !ok || p.Doc == "" {
			t.Fatalf("conformer %q = %+v, ok=%v", kind, p, ok)
		}
	}
}

func TestCourierContractSurface(t *testing.T) {
	c := CourierContract()
	if got, want := c.Exposed(), []string{"TakeDelivery", "Callsign"}; !reflect.DeepEqual(got, want) {
		t.Fatalf("Exposed() = %v, want %v", got, want)
	}
	if !c.Requires("TakeDelivery") || !c.Requires("Callsign") {
		t.Fatalf("courier is missing a required member")
	}
	if c.Requires("Battery") {
		t.Fatalf("courier must not require Battery")
	}
}

func TestZonedCourierCombinesBothSurfaces(t *testing.T) {
	c := ZonedCourierContract()
	want := []string{"TakeDelivery", "Callsign", "Zone", "SetZone"}
	if got := c.Exposed(); !reflect.DeepEqual(got, want) {
		t.Fatalf("Exposed() = %v, want %v", got, want)
	}
}

func TestBuiltinConformance(t *testing.T) {
	var w bytes.Buffer
	courier := CourierContract()
	routable := RoutableContract()
	zoned := ZonedCourierContract()

	cases := []struct {
		name      string
		conformer any
		contract  pact.Contract
		want      bool
	}{
		{"bike satisfies courier", NewBikeCourier(&w), courier, true},
		{"drone satisfies courier", NewDrone(&w), courier, true},
		{"pager satisfies courier", NewPager(&w), courier, true},
		{"drone satisfies routable", NewDrone(&w), routable, true},
		{"drone satisfies zoned-courier", NewDrone(&w), zoned, true},
		{"bike lacks routable", NewBikeCourier(&w), routable, false},
		{"pager lacks zoned-courier", NewPager(&w), zoned, false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := pact.Conforms(tc.contract, tc.conformer); got != tc.want {
				t.Fatalf("Conforms = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestDroneConcealsOffContractMembers(t *testing.T) {
	hidden := pact.Concealed(ZonedCourierContract(), NewDrone(nil))
	if want := []string{"Battery", "Recharge"}; !reflect.DeepEqual(hidden, want) {
		t.Fatalf("Concealed = %v, want %v", hidden, want)
	}
}

func TestBikeCourierAcceptsAndAnnounces(t *testing.T) {
	var w bytes.Buffer
	bike := NewBikeCourier(&w)

	if !bike.TakeDelivery() {
		t.Fatalf("bike declined")
	}
	if got := w.String(); got != "bike-7 rings the bell and pedals off\n" {
		t.Fatalf("side output = %q", got)
	}
	if bike.Callsign() != "bike-7" {
		t.Fatalf("Callsign = %q", bike.Callsign())
	}
}

func TestPagerDeclinesEverything(t *testing.T) {
	var w bytes.Buffer
	pager := NewPager(&w)

	if pager.TakeDelivery() {
		t.Fatalf("pager accepted")
	}
	if got := w.String(); got != "pager-5 beeps into the void\n" {
		t.Fatalf("side output = %q", got)
	}
}

func TestDroneBatteryDrain(t *testing.T) {
	var w bytes.Buffer
	drone := NewDrone(&w)

	for i := range 3 {
		if !drone.TakeDelivery() {
			t.Fatalf("delivery %d declined at battery %d%%", i+1, drone.Battery())
		}
	}
	if drone.Battery() != 10 {
		t.Fatalf("battery = %d, want 10", drone.Battery())
	}

	w.Reset()
	if drone.TakeDelivery() {
		t.Fatalf("drone flew on a drained battery")
	}
	if !strings.Contains(w.String(), "drone-2 grounded, battery at 10%") {
		t.Fatalf("side output = %q", w.String())
	}

	drone.Recharge()
	if drone.Battery() != 100 {
		t.Fatalf("battery = %d after recharge", drone.Battery())
	}
	if !drone.TakeDelivery() {
		t.Fatalf("drone declined after recharge")
	}
}

func TestDroneRerouting(t *testing.T) {
	var w bytes.Buffer
	drone := NewDrone(&w)

	if drone.Zone() != "north" {
		t.Fatalf("initial zone = %q", drone.Zone())
	}
	drone.SetZone("harbor")
	if drone.Zone() != "harbor" {
		t.Fatalf("zone = %q after SetZone", drone.Zone())
	}
	drone.TakeDelivery()
	if !strings.Contains(w.String(), "lifts off toward harbor") {
		t.Fatalf("side output = %q", w.String())
	}
}

func TestConformerConstructorsAcceptNilWriter(t *testing.T) {
	NewBikeCourier(nil).TakeDelivery()
	NewDrone(nil).TakeDelivery()
	NewPager(nil).TakeDelivery()
}

func TestDemoScenarioIsWellFormed(t *testing.T) {
	sc := Demo()
	if err := sc.Validate(); err != nil {
		t.Fatalf("Validate failed: %v", err)
	}
	if _, err := ResolveContract(Builtin(), sc); err != nil {
		t.Fatalf("ResolveContract failed: %v", err)
	}
}
