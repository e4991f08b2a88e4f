package cmd

import (
	"context"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"firestige.xyz/ledwall/internal/sender"
)

var sendCfg = sender.Config{}
var sendFPS int

var sendCmd = &cobra.Command{
	Use:   "send",
	Short: "Send test frames to a receiver",
	Long: `
Send RGB frames to a running receiver, either as chunked datagrams (udp) or
as a raw byte stream (tcp). Frames come from an image file or, by default,
from a procedural moving-gradient pattern.

Examples:
  ledwall send --addr 10.0.0.5:5005                     # udp pattern at 30fps
  ledwall send --mode tcp --addr 127.0.0.1:9999         # stream pattern
  ledwall send --image logo.png --frames 1              # one-shot image
`,
	Run: func(cmd *cobra.Command, args []string) {
		runSend()
	},
}

func init() {
	sendCmd.Flags().StringVar(&sendCfg.Addr, "addr", "127.0.0.1:5005", "receiver address")
	sendCmd.Flags().StringVar(&sendCfg.Mode, "mode", "udp", "transport: udp or tcp")
	sendCmd.Flags().IntVar(&sendCfg.Width, "width", 256, "frame width in pixels")
	sendCmd.Flags().IntVar(&sendCfg.Height, "height", 192, "frame height in pixels")
	sendCmd.Flags().IntVar(&sendCfg.ChunkSize, "chunk", 1024, "datagram payload bytes (udp mode)")
	sendCmd.Flags().IntVar(&sendCfg.Frames, "frames", 0, "number of frames to send (0 = until interrupted)")
	sendCmd.Flags().StringVar(&sendCfg.ImagePath, "image", "", "PNG/JPEG file to send instead of the pattern")
	sendCmd.Flags().IntVar(&sendFPS, "fps", 30, "frames per second")
	rootCmd.AddCommand(sendCmd)
}

func runSend() {
	if sendCfg.Mode != "udp" && sendCfg.Mode != "tcp" {
		exitWithError("invalid --mode (must be udp or tcp)", nil)
	}
	if sendFPS <= 0 {
		exitWithError("invalid --fps", nil)
	}
	sendCfg.Interval = time.Second / time.Duration(sendFPS)

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := sender.Run(ctx, sendCfg); err != nil {
		exitWithError("send failed", err)
	}
}
