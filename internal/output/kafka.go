package output

import (
	"encoding/json"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/IBM/sarama"

	"github.com/urbanmobility/mobidatasim/internal/models"
)

// KafkaPublisher streams every generated record as JSON to per-dataset
// topics, keyed by the run id so consumers can group one generation run.
type KafkaPublisher struct {
	producer sarama.SyncProducer
	runID    string
}

func NewKafkaPublisher(config *models.Config, runID string) (*KafkaPublisher, error) {
	saramaConfig := sarama.NewConfig()
	saramaConfig.Producer.RequiredAcks = sarama.WaitForAll
	saramaConfig.Producer.Retry.Max = 5
	saramaConfig.Producer.Retry.Backoff = 100 * time.Millisecond
	saramaConfig.Producer.Return.Successes = true // Must be true for SyncProducer
	saramaConfig.Net.DialTimeout = 30 * time.Second
	saramaConfig.Net.ReadTimeout = 30 * time.Second
	saramaConfig.Net.WriteTimeout = 30 * time.Second

	brokerList := strings.Split(config.KafkaBrokerList, ",")
	producer, err := sarama.NewSyncProducer(brokerList, saramaConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create Kafka producer: %w", err)
	}

	log.Printf("Kafka producer created with brokers %v", brokerList)
	return &KafkaPublisher{producer: producer, runID: runID}, nil
}

func (p *KafkaPublisher) PublishAll(zones []models.Zone, traffic []models.TrafficRecord, pings []models.BusPing, schedule []models.PlannedService) error {
	for _, z := range zones {
		event := map[string]interface{}{
			"zone_id":      z.ID,
			"area_code":    z.AreaCode,
			"service_zone": z.ServiceZone,
		}
		if err := p.publish(models.TopicZones, event); err != nil {
			return err
		}
	}

	for _, rec := range traffic {
		event := map[string]interface{}{
			"zone_id":           rec.ZoneID,
			"timestamp":         rec.Timestamp.Format(models.TimestampLayout),
			"average_speed_kmh": rec.AverageSpeedKmh,
			"traffic_volume":    rec.TrafficVolume,
			"occupancy_rate":    rec.OccupancyRate,
		}
		if err := p.publish(models.TopicTraffic, event); err != nil {
			return err
		}
	}

	for _, ping := range pings {
		event := map[string]interface{}{
			"bus_id":        ping.BusID,
			"line_id":       ping.LineID,
			"area_code":     ping.AreaCode,
			"timestamp":     ping.Timestamp.Format(models.TimestampLayout),
			"delay_minutes": ping.DelayMinutes,
			"speed_kmh":     ping.SpeedKmh,
			"lon":           ping.Location.Lon,
			"lat":           ping.Location.Lat,
		}
		if err := p.publish(models.TopicBusPings, event); err != nil {
			return err
		}
	}

	for _, svc := range schedule {
		event := map[string]interface{}{
			"line_id":        svc.LineID,
			"service_zone":   svc.ServiceZone,
			"day_type":       svc.DayType,
			"scheduled_time": svc.ScheduledTime,
			"frequency_min":  svc.FrequencyMin,
		}
		if err := p.publish(models.TopicPlanning, event); err != nil {
			return err
		}
	}
	return nil
}

func (p *KafkaPublisher) publish(topic string, event interface{}) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return err
	}
	_, _, err = p.producer.SendMessage(&sarama.ProducerMessage{
		Topic: topic,
		Key:   sarama.StringEncoder(p.runID),
		Value: sarama.ByteEncoder(payload),
	})
	if err != nil {
		log.Printf("Failed to send message to topic %s: %v", topic, err)
	}
	return err
}

func (p *KafkaPublisher) Close() error {
	if p.producer != nil {
		return p.producer.Close()
	}
	return nil
}
