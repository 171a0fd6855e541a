package shoppr

// Version is the shoppr release.
const Version = "0.1.0"
