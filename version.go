package openstreetmap

var Version string

// buildVersion gets replaced while building with
// go build -ldflags "-X github.com/nbijlani/OpenStreetMap.buildVersion .post1"
var buildVersion string

func init() {
	Version = "1.0.0"
	Version += buildVersion
}
