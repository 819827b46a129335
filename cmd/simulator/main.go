package main

import (
	"encoding/json"
	"math/rand"
	"strconv"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"

	"github.com/pawtel/collar-telemetry/internal/config"
)

type telemetry struct {
	CollarID     string  `json:"collar_id"`
	DogName      string  `json:"dog_name"`
	Breed        string  `json:"breed"`
	Temperature  float64 `json:"temperature"`
	StepCount    int64   `json:"stepcount"`
	CalorieCount float64 `json:"caloriecount"`
	NPLTime      string  `json:"npl_time"`
}

var dogs = []struct{ name, breed string }{
	{"Muffin", "Beagle"},
	{"Rex", "German Shepherd"},
	{"Luna", "Border Collie"},
	{"Bamba", "Mixed"},
	{"Oscar", "Labrador"},
	{"Maya", "Poodle"},
}

func main() {
	_ = godotenv.Load()
	if err := config.Load(); err != nil {
		log.Fatal().Err(err).Msg("config load failed")
	}
	opts := mqtt.NewClientOptions().AddBroker(config.MQTTBroker())
	client := mqtt.NewClient(opts)
	if token := client.Connect(); token.Wait() && token.Error() != nil {
		log.Fatal().Err(token.Error()).Msg("mqtt connect")
	}
	defer client.Disconnect(250)

	topic := config.MQTTTopic()
	for i := 0; i < 100; i++ {
		n := rand.Intn(len(dogs))
		t := telemetry{
			CollarID:     strconv.Itoa(n + 1),
			DogName:      dogs[n].name,
			Breed:        dogs[n].breed,
			Temperature:  37.5 + rand.Float64()*2,
			StepCount:    int64(rand.Intn(500)),
			CalorieCount: 5 + rand.Float64()*20,
			NPLTime:      time.Now().UTC().Format(time.RFC3339),
		}
		payload, _ := json.Marshal(t)
		token := client.Publish(topic, 0, false, payload)
		token.Wait()
		time.Sleep(500 * time.Millisecond)
	}
	log.Info().Msg("simulation done")
}
