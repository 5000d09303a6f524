//go:build !amd64 && !arm64

package hwy

func init() {
	// No vector unit is detected on other architectures: Vec4 lanes run
	// as plain Go and MulAddLane rounds the product before the add.
	setScalarMode()
}
