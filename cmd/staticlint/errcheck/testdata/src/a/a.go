package a

import (
	"bytes"
	"errors"
	"fmt"
	"hash"
	"os"
)

func push() error {
	return errors.New("backend down")
}

func query() (int, error) {
	return 0, nil
}

func f() {
	push()                    // want "returned error is not handled"
	query()                   // want "returned error is not handled"
	os.Remove("receiver.log") // want "returned error is not handled"

	_ = push()
	if err := push(); err != nil {
		fmt.Println(err)
	}
	defer push()

	var buf bytes.Buffer
	buf.WriteString("alert")
	fmt.Fprintln(&buf, "disk full")
}

func sign(h hash.Hash, data []byte) {
	h.Write(data)
}
