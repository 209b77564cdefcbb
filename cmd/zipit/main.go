// Command zipit compresses a file into a Huffman container or expands one
// back, driven by a short interactive prompt.
package main

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"zipit"
)

func main() {
	in := bufio.NewReader(os.Stdin)

	fmt.Println("Using zipit, do you want to compress or decompress a file?")
	fmt.Println("1. Compress File")
	fmt.Println("2. Decompress File")

	choice, err := prompt(in, "Enter (1 or 2): ")
	if err != nil {
		report(err)
		return
	}

	switch choice {
	case "1":
		runCompress(in)
	case "2":
		runDecompress(in)
	default:
		fmt.Println("Invalid choice! Please enter 1 or 2.")
	}
}

// prompt prints label and returns the next input line with surrounding
// whitespace and quote characters removed.
func prompt(in *bufio.Reader, label string) (string, error) {
	fmt.Print(label)
	line, err := in.ReadString('\n')
	if err != nil && line == "" {
		return "", err
	}
	return strings.Trim(line, "\"' \t\r\n"), nil
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

func reportMissing(path string) {
	abs, err := filepath.Abs(path)
	if err != nil {
		abs = path
	}
	fmt.Println("File not found at:", abs)
	if wd, err := os.Getwd(); err == nil {
		fmt.Println("Current working directory:", wd)
	}
}

func report(err error) {
	fmt.Println("An error occurred:", err)
	fmt.Println("Please check your input files and try again.")
}

func runCompress(in *bufio.Reader) {
	src, err := prompt(in, "Enter file to compress: ")
	if err != nil {
		report(err)
		return
	}
	if !fileExists(src) {
		reportMissing(src)
		return
	}
	dst, err := prompt(in, "Enter output file name: ")
	if err != nil {
		report(err)
		return
	}

	stats, err := zipit.CompressFile(src, dst)
	if err != nil {
		report(err)
		return
	}
	fmt.Printf("Compression complete. Original: %d bytes, Compressed: %d bytes\n",
		stats.InputBytes, stats.OutputBytes)
}

func runDecompress(in *bufio.Reader) {
	src, err := prompt(in, "Enter file to decompress: ")
	if err != nil {
		report(err)
		return
	}
	if !fileExists(src) {
		reportMissing(src)
		return
	}
	dst, err := prompt(in, "Enter output file name: ")
	if err != nil {
		report(err)
		return
	}

	stats, err := zipit.DecompressFile(src, dst)
	if err != nil {
		report(err)
		return
	}
	fmt.Printf("Decompression complete. Compressed: %d bytes, Decompressed: %d bytes\n",
		stats.InputBytes, stats.OutputBytes)
}
