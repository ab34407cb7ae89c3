//go:build !unix

package install

var checkExecutable = func(string) error {
	return nil
}
