package service

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/color/palette"
	"image/draw"
	"image/gif"
	"path/filepath"
	"strings"
	"time"

	"github.com/disintegration/imaging"

	"github.com/Darkone83/LoveByte/internal/config"
	"github.com/Darkone83/LoveByte/internal/repository"
)

// Ошибки транскодера
var (
	ErrUnsupportedFormat = errors.New("неподдерживаемый формат изображения")
	ErrTranscodeFailed   = errors.New("ошибка обработки изображения")
)

// defaultFrameDelay — задержка кадра GIF, если исходник её не задал
// (6 сотых секунды = 60 мс)
const defaultFrameDelay = 6

// artifactTimeLayout — метка времени в имени артефакта
const artifactTimeLayout = "20060102_150405"

// Transcoder приводит загруженные картинки к разрешению панели
// Статика (jpg/jpeg/png) пересохраняется в JPEG, анимация (gif)
// остаётся зацикленным GIF. На каждый успешный вызов записывается
// ровно один файл-артефакт
type Transcoder struct {
	panel     config.PanelConfig             // Целевое разрешение
	artifacts *repository.ArtifactRepository // Куда складывать результат
}

// NewTranscoder создаёт новый транскодер
func NewTranscoder(panel config.PanelConfig, artifacts *repository.ArtifactRepository) *Transcoder {
	return &Transcoder{
		panel:     panel,
		artifacts: artifacts,
	}
}

// Transcode перекодирует файл и сохраняет артефакт на диск
// Формат определяется по расширению заявленного имени файла
// Возвращает имя артефакта и краткое описание результата
func (t *Transcoder) Transcode(filename string, data []byte) (string, string, error) {
	ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(filename)), ".")
	stamp := time.Now().Format(artifactTimeLayout)

	switch ext {
	case "jpg", "jpeg", "png":
		out, err := t.transcodeStill(data)
		if err != nil {
			return "", "", fmt.Errorf("%w: %v", ErrTranscodeFailed, err)
		}
		name := fmt.Sprintf("img_%s.jpg", stamp)
		if err := t.artifacts.Save(name, out); err != nil {
			return "", "", fmt.Errorf("%w: %v", ErrTranscodeFailed, err)
		}
		return name, "JPG/PNG resized", nil

	case "gif":
		out, err := t.transcodeAnimation(data)
		if err != nil {
			return "", "", fmt.Errorf("%w: %v", ErrTranscodeFailed, err)
		}
		name := fmt.Sprintf("img_%s.gif", stamp)
		if err := t.artifacts.Save(name, out); err != nil {
			return "", "", fmt.Errorf("%w: %v", ErrTranscodeFailed, err)
		}
		return name, "GIF resized", nil

	default:
		return "", "", ErrUnsupportedFormat
	}
}

// transcodeStill: декодировать, растянуть до разрешения панели, пересохранить
// JPEG не хранит альфа-канал, поэтому результат всегда трёхканальный
func (t *Transcoder) transcodeStill(data []byte) ([]byte, error) {
	img, err := imaging.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}

	resized := imaging.Resize(img, t.panel.Width, t.panel.Height, imaging.Lanczos)

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, resized, imaging.JPEG); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// transcodeAnimation обрабатывает каждый кадр отдельно и собирает
// зацикленную анимацию с исходными задержками кадров
func (t *Transcoder) transcodeAnimation(data []byte) ([]byte, error) {
	src, err := gif.DecodeAll(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	if len(src.Image) == 0 {
		return nil, errors.New("в GIF нет ни одного кадра")
	}

	// LoopCount 0 — бесконечный цикл
	out := &gif.GIF{LoopCount: 0}

	for i, frame := range src.Image {
		resized := imaging.Resize(frame, t.panel.Width, t.panel.Height, imaging.Lanczos)

		// После ресайза кадр снова нужно привести к палитре:
		// GIF хранит только индексированные цвета
		pal := frame.Palette
		if len(pal) == 0 {
			pal = palette.Plan9
		}
		paletted := image.NewPaletted(resized.Bounds(), pal)
		draw.FloydSteinberg.Draw(paletted, resized.Bounds(), resized, image.Point{})

		delay := 0
		if i < len(src.Delay) {
			delay = src.Delay[i]
		}
		if delay <= 0 {
			delay = defaultFrameDelay
		}

		out.Image = append(out.Image, paletted)
		out.Delay = append(out.Delay, delay)
	}

	var buf bytes.Buffer
	if err := gif.EncodeAll(&buf, out); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
